// Package search provides the Meilisearch implementation of term search.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/glossary/backend/internal/domain/catalog"
	infraconfig "github.com/glossary/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

var _ catalogapp.TermSearchIndex = (*MeiliTermIndex)(nil)

const defaultIndexName = "terms"

// meiliTermDoc is the shape indexed per term. Only searchable text and the
// fields needed to rank or filter go in; the database stays the source of
// truth for everything else.
type meiliTermDoc struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ShortDefinition string `json:"short_definition"`
	Definition      string `json:"definition"`
	CategoryID      string `json:"category_id,omitempty"`
	ViewCount       int64  `json:"view_count"`
}

// MeiliTermIndex indexes glossary terms in Meilisearch for typo-tolerant
// full-text search
type MeiliTermIndex struct {
	client    meilisearch.ServiceManager
	indexName string
	logger    *zap.Logger
}

// NewMeiliTermIndex connects to Meilisearch and prepares the terms index
func NewMeiliTermIndex(cfg infraconfig.SearchConfig, logger *zap.Logger) (*MeiliTermIndex, error) {
	if cfg.Host == "" {
		return nil, errors.New("meilisearch host is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	host := cfg.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}

	indexName := cfg.IndexName
	if indexName == "" {
		indexName = defaultIndexName
	}

	index := &MeiliTermIndex{
		client:    meilisearch.New(host, meilisearch.WithAPIKey(cfg.APIKey)),
		indexName: indexName,
		logger:    logger,
	}
	index.configureIndex()
	return index, nil
}

// configureIndex sets ranking-relevant attributes. Failures are logged and
// tolerated; the index still works with Meilisearch defaults.
func (m *MeiliTermIndex) configureIndex() {
	searchable := []string{"name", "short_definition", "definition"}
	if _, err := m.client.Index(m.indexName).UpdateSearchableAttributes(&searchable); err != nil {
		m.logger.Warn("failed to update searchable attributes", zap.Error(err))
	}

	filterable := []interface{}{"category_id"}
	if _, err := m.client.Index(m.indexName).UpdateFilterableAttributes(&filterable); err != nil {
		m.logger.Warn("failed to update filterable attributes", zap.Error(err))
	}

	sortable := []string{"view_count"}
	if _, err := m.client.Index(m.indexName).UpdateSortableAttributes(&sortable); err != nil {
		m.logger.Warn("failed to update sortable attributes", zap.Error(err))
	}
}

// IndexTerm adds or replaces one term document
func (m *MeiliTermIndex) IndexTerm(ctx context.Context, term *catalog.Term) error {
	doc := toTermDoc(term)
	task, err := m.client.Index(m.indexName).AddDocuments([]meiliTermDoc{doc}, primaryKey())
	if err != nil {
		return fmt.Errorf("failed to index term %s: %w", term.ID, err)
	}

	m.logger.Debug("term indexed",
		zap.String("term_id", doc.ID),
		zap.Int64("task_uid", task.TaskUID))
	return nil
}

// RemoveTerm deletes one term document
func (m *MeiliTermIndex) RemoveTerm(ctx context.Context, termID uuid.UUID) error {
	if _, err := m.client.Index(m.indexName).DeleteDocument(termID.String()); err != nil {
		return fmt.Errorf("failed to remove term %s from index: %w", termID, err)
	}
	return nil
}

// SearchTerms returns term IDs ranked by relevance
func (m *MeiliTermIndex) SearchTerms(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := m.client.Index(m.indexName).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return decodeHitIDs(*raw)
}

// RebuildFrom reindexes the full term set in one batch. Used by the admin
// reindex operation after bulk imports.
func (m *MeiliTermIndex) RebuildFrom(ctx context.Context, terms []catalog.Term) error {
	if len(terms) == 0 {
		return nil
	}

	docs := make([]meiliTermDoc, len(terms))
	for i := range terms {
		docs[i] = toTermDoc(&terms[i])
	}
	if _, err := m.client.Index(m.indexName).AddDocuments(docs, primaryKey()); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	m.logger.Info("search index rebuilt", zap.Int("terms", len(docs)))
	return nil
}

func toTermDoc(term *catalog.Term) meiliTermDoc {
	doc := meiliTermDoc{
		ID:              term.ID.String(),
		Name:            term.Name,
		ShortDefinition: term.ShortDefinition,
		Definition:      term.Definition,
		ViewCount:       term.ViewCount,
	}
	if term.CategoryID != nil {
		doc.CategoryID = term.CategoryID.String()
	}
	return doc
}

// decodeHitIDs pulls ordered document IDs out of a raw search response
func decodeHitIDs(raw json.RawMessage) ([]uuid.UUID, error) {
	var response struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(response.Hits))
	for _, hit := range response.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			// skip documents indexed under a foreign key scheme
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func primaryKey() *string {
	key := "id"
	return &key
}
