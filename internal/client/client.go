// Package client fetches site pages and converts them into records.
package client

import (
	"bytes"
	"context"
	"fmt"

	"hltv-parser/internal/converter"
	"hltv-parser/internal/dom"
	"hltv-parser/internal/fetcher"
	"hltv-parser/internal/hltv"
	"hltv-parser/internal/observability"
	"hltv-parser/internal/request"
)

type Client struct {
	source  fetcher.Source
	baseURL string
	logger  *observability.Logger
}

func New(source fetcher.Source, baseURL string, logger *observability.Logger) *Client {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Client{source: source, baseURL: baseURL, logger: logger.With("component", "client")}
}

func (c *Client) Match(ctx context.Context, id uint32) (*hltv.MatchPage, error) {
	doc, err := c.document(ctx, request.MatchURL(id))
	if err != nil {
		return nil, err
	}
	page, err := converter.MatchPage(doc)
	if err != nil {
		return nil, fmt.Errorf("convert match %d: %w", id, err)
	}
	return page, nil
}

func (c *Client) Team(ctx context.Context, id uint32) (*hltv.TeamPage, error) {
	doc, err := c.document(ctx, request.TeamURL(id))
	if err != nil {
		return nil, err
	}
	page, err := converter.TeamPage(doc)
	if err != nil {
		return nil, fmt.Errorf("convert team %d: %w", id, err)
	}
	return page, nil
}

// Upcoming returns the entries that converted; the others are logged.
func (c *Client) Upcoming(ctx context.Context, b *request.UpcomingBuilder) ([]hltv.UpcomingMatch, error) {
	ref := b.Build()
	doc, err := c.document(ctx, ref)
	if err != nil {
		return nil, err
	}
	listing, err := converter.Upcoming(doc)
	if err != nil {
		return nil, fmt.Errorf("convert upcoming: %w", err)
	}
	c.logSkipped(ref, listing.Skipped)
	return listing.Items, nil
}

// Results returns the entries that converted; the others are logged.
func (c *Client) Results(ctx context.Context, b *request.ResultsBuilder) ([]hltv.MatchResult, error) {
	ref := b.Build()
	doc, err := c.document(ctx, ref)
	if err != nil {
		return nil, err
	}
	listing, err := converter.Results(doc)
	if err != nil {
		return nil, fmt.Errorf("convert results: %w", err)
	}
	c.logSkipped(ref, listing.Skipped)
	return listing.Items, nil
}

func (c *Client) document(ctx context.Context, ref string) (*dom.Document, error) {
	u, err := request.Resolve(c.baseURL, ref)
	if err != nil {
		return nil, err
	}
	resp, err := c.source.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	doc, err := dom.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	return doc, nil
}

func (c *Client) logSkipped(ref string, skipped []error) {
	for _, err := range skipped {
		c.logger.Warn("record skipped", "page", ref, "err", err)
	}
}
