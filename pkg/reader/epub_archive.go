package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// epubArchive wraps an opened EPUB zip with its parsed OPF package.
type epubArchive struct {
	path    string
	zr      *zip.ReadCloser
	entries map[string]*zip.File
	pkg     opfPackage
	baseDir string
}

type opfPackage struct {
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
		Metas    []struct {
			Name    string `xml:"name,attr"`
			Content string `xml:"content,attr"`
		} `xml:"meta"`
	} `xml:"metadata"`
	Manifest struct {
		Items []opfItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type ocfContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

func openEpub(filePath string) (*epubArchive, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, filePath)
	}
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	archive := &epubArchive{
		path:    filePath,
		zr:      zr,
		entries: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		archive.entries[f.Name] = f
	}

	opfPath, err := archive.rootPackagePath()
	if err != nil {
		zr.Close()
		return nil, err
	}
	opfData, ok := archive.readEntry(opfPath)
	if !ok {
		zr.Close()
		return nil, fmt.Errorf("%w: missing OPF package %s", ErrInvalidArchive, opfPath)
	}
	if err := xml.Unmarshal(opfData, &archive.pkg); err != nil {
		zr.Close()
		return nil, fmt.Errorf("%w: parse OPF: %v", ErrInvalidArchive, err)
	}
	archive.baseDir = path.Dir(opfPath)
	if archive.baseDir == "." {
		archive.baseDir = ""
	}
	return archive, nil
}

func (a *epubArchive) Close() error { return a.zr.Close() }

// rootPackagePath reads META-INF/container.xml to find the OPF document.
func (a *epubArchive) rootPackagePath() (string, error) {
	data, ok := a.readEntry("META-INF/container.xml")
	if !ok {
		return "", fmt.Errorf("%w: missing META-INF/container.xml", ErrInvalidArchive)
	}
	var container ocfContainer
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", fmt.Errorf("%w: parse container.xml: %v", ErrInvalidArchive, err)
	}
	for _, rootfile := range container.Rootfiles {
		if strings.TrimSpace(rootfile.FullPath) != "" {
			return rootfile.FullPath, nil
		}
	}
	return "", fmt.Errorf("%w: OPF package path not found", ErrInvalidArchive)
}

// chapterPaths resolves the spine reading order against the manifest.
// Unresolvable itemrefs are skipped.
func (a *epubArchive) chapterPaths() []string {
	hrefByID := make(map[string]string, len(a.pkg.Manifest.Items))
	for _, item := range a.pkg.Manifest.Items {
		hrefByID[item.ID] = item.Href
	}
	var paths []string
	for _, ref := range a.pkg.Spine.ItemRefs {
		href, ok := hrefByID[ref.IDRef]
		if !ok {
			continue
		}
		paths = append(paths, a.resolveHref(href))
	}
	return paths
}

func (a *epubArchive) resolveHref(href string) string {
	href, _, _ = strings.Cut(href, "#")
	if strings.HasPrefix(href, "/") {
		return strings.TrimPrefix(href, "/")
	}
	if a.baseDir == "" {
		return href
	}
	return a.baseDir + "/" + href
}

func (a *epubArchive) readEntry(entryPath string) ([]byte, bool) {
	f, ok := a.entries[entryPath]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (a *epubArchive) title() string {
	for _, t := range a.pkg.Metadata.Titles {
		if s := collapseWhitespace(t); s != "" {
			return s
		}
	}
	return ""
}

func (a *epubArchive) author() string {
	for _, c := range a.pkg.Metadata.Creators {
		if s := collapseWhitespace(c); s != "" {
			return s
		}
	}
	return ""
}

// cover returns the cover image bytes and a file extension. The explicit
// <meta name="cover"> manifest item wins; otherwise the first image/*
// manifest entry is used.
func (a *epubArchive) cover() ([]byte, string, bool) {
	var coverItem *opfItem
	for _, meta := range a.pkg.Metadata.Metas {
		if !strings.EqualFold(meta.Name, "cover") {
			continue
		}
		for i, item := range a.pkg.Manifest.Items {
			if item.ID == meta.Content {
				coverItem = &a.pkg.Manifest.Items[i]
				break
			}
		}
		break
	}
	if coverItem == nil {
		for i, item := range a.pkg.Manifest.Items {
			if strings.HasPrefix(strings.ToLower(item.MediaType), "image/") {
				coverItem = &a.pkg.Manifest.Items[i]
				break
			}
		}
	}
	if coverItem == nil {
		return nil, "", false
	}
	data, ok := a.readEntry(a.resolveHref(coverItem.Href))
	if !ok {
		return nil, "", false
	}
	return data, coverExtension(coverItem.MediaType, coverItem.Href), true
}

func coverExtension(mediaType, href string) string {
	if idx := strings.LastIndex(href, "."); idx >= 0 && idx < len(href)-1 {
		return strings.ToLower(href[idx+1:])
	}
	switch strings.ToLower(mediaType) {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "img"
	}
}

// EpubMetadata is best-effort metadata read at import time.
type EpubMetadata struct {
	Title    string
	Author   string
	Cover    []byte
	CoverExt string
}

// ExtractEpubMetadata reads title, author and cover image from the OPF
// package. Extraction is best-effort: a broken archive yields zero values,
// never an error, because import falls back to the filename.
func ExtractEpubMetadata(filePath string) EpubMetadata {
	archive, err := openEpub(filePath)
	if err != nil {
		return EpubMetadata{}
	}
	defer archive.Close()

	meta := EpubMetadata{
		Title:  archive.title(),
		Author: archive.author(),
	}
	if data, ext, ok := archive.cover(); ok {
		meta.Cover = data
		meta.CoverExt = ext
	}
	return meta
}
