package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const aboutPage = `---
title: About Us
slug: about
collection: entity_pages
scope: entity:restaurant:42
homepage: true
layout: 3
meta_title: About the kitchen
chef: Ana
---
# Our story

We opened in 1998.
`

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte(aboutPage))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "About Us" || fm.Slug != "about" {
		t.Fatalf("unexpected title/slug: %q %q", fm.Title, fm.Slug)
	}
	if fm.Collection != "entity_pages" || fm.Scope != "entity:restaurant:42" {
		t.Fatalf("unexpected collection/scope: %q %q", fm.Collection, fm.Scope)
	}
	if !fm.Homepage || fm.Draft || fm.Layout != 3 {
		t.Fatalf("unexpected flags: %+v", fm)
	}
	if fm.Custom["chef"] != "Ana" {
		t.Fatalf("expected custom field, got %#v", fm.Custom)
	}
	if !strings.Contains(string(body), "# Our story") {
		t.Fatalf("markdown body not returned correctly: %q", string(body))
	}
}

func TestBuildDocument(t *testing.T) {
	modified := time.Now().UTC()
	doc, err := BuildDocument("about.md", []byte(aboutPage), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.FilePath != "about.md" || !doc.LastModified.Equal(modified) {
		t.Fatalf("unexpected document metadata: %+v", doc)
	}
}

func TestGoldmarkParserRendersMarkdown(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<h1 id="heading">Heading</h1>`) {
		t.Fatalf("expected heading with id, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected bold text, got %q", out)
	}
}

func TestGoldmarkParserSafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("<script>alert(1)</script>\n\ntext"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw html to be omitted, got %q", string(html))
	}
}

func TestLoaderLoadDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/about.md":         {Data: []byte(aboutPage)},
		"pages/contact.md":       {Data: []byte("---\ntitle: Contact\n---\nCall us.")},
		"pages/notes.txt":        {Data: []byte("ignored")},
		"pages/nested/hidden.md": {Data: []byte("---\ntitle: Hidden\n---\n")},
	}

	loader := NewLoader(fsys, LoaderConfig{})
	docs, err := loader.LoadDirectory(context.Background(), "pages")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].FilePath != "pages/about.md" || docs[1].FilePath != "pages/contact.md" {
		t.Fatalf("unexpected order: %s, %s", docs[0].FilePath, docs[1].FilePath)
	}
	if len(docs[0].Checksum) == 0 {
		t.Fatal("expected checksum to be populated")
	}

	recursive := NewLoader(fsys, LoaderConfig{Recursive: true})
	docs, err = recursive.LoadDirectory(context.Background(), "pages")
	if err != nil {
		t.Fatalf("recursive LoadDirectory: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents when recursive, got %d", len(docs))
	}
}
