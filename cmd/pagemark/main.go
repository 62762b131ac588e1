package main

import (
	"pagemark/internal/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Fatal("command failed", "err", err)
	}
}
