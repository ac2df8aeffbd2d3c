// Package index maintains a full-text index over saved lyrics.
package index

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"

	"github.com/jfmyers9/verses/internal/catalog"
)

const defaultLimit = 10

// Index is a bleve full-text index of songs keyed by song id.
type Index struct {
	index bleve.Index
}

// Hit is one search result.
type Hit struct {
	ID     int
	Score  float64
	Title  string
	Artist string
}

type document struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Lyrics string `json:"lyrics"`
}

// Open opens the index directory at path, creating it when missing.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		idx, err := bleve.New(path, bleve.NewIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
		return &Index{index: idx}, nil
	}

	idx, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return &Index{index: idx}, nil
}

// NewMemory creates an index that lives only in memory.
func NewMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Close closes the index.
func (i *Index) Close() error {
	if i.index != nil {
		return i.index.Close()
	}
	return nil
}

// Add indexes songs, replacing earlier versions with the same id.
func (i *Index) Add(songs ...*catalog.Song) error {
	batch := i.index.NewBatch()
	for _, s := range songs {
		if err := batch.Index(strconv.Itoa(s.ID), newDocument(s)); err != nil {
			return fmt.Errorf("failed to index song %d: %w", s.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to write index batch: %w", err)
	}
	return nil
}

// Search runs a query-string query ("troubles", "artist:beatles",
// "+yesterday -live") and returns up to limit hits by relevance.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), limit, 0, false)
	req.Fields = []string{"title", "artist"}

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		hit := Hit{ID: id, Score: h.Score}
		hit.Title, _ = h.Fields["title"].(string)
		hit.Artist, _ = h.Fields["artist"].(string)
		hits = append(hits, hit)
	}
	return hits, nil
}

// Count returns the number of indexed songs.
func (i *Index) Count() (int, error) {
	c, err := i.index.DocCount()
	return int(c), err
}

func newDocument(s *catalog.Song) document {
	d := document{Title: s.Title, Artist: s.Artist, Lyrics: s.Lyrics}
	if s.Album != nil {
		d.Album = s.Album.Name
	}
	return d
}
