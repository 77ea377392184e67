// Package pager tracks the paginated request list and decides which
// navigation is allowed.
package pager

import (
	"context"

	"github.com/kart-io/medreq/internal/model"
)

// Fetcher loads one page.
type Fetcher func(ctx context.Context, page int) (*model.RequestPage, error)

// Pager holds the last loaded page. Before the first load it reports page 1
// of 1 with no rows.
type Pager struct {
	fetch Fetcher
	page  model.RequestPage
}

// New returns a Pager using fetch.
func New(fetch Fetcher) *Pager {
	return &Pager{
		fetch: fetch,
		page:  model.RequestPage{CurrentPage: 1, LastPage: 1},
	}
}

// Load fetches page unconditionally. On error the previous page is kept.
func (p *Pager) Load(ctx context.Context, page int) error {
	next, err := p.fetch(ctx, page)
	if err != nil {
		return err
	}
	if next.CurrentPage < 1 {
		next.CurrentPage = 1
	}
	if next.LastPage < 1 {
		next.LastPage = 1
	}
	p.page = *next
	return nil
}

// Refresh reloads the current page.
func (p *Pager) Refresh(ctx context.Context) error {
	return p.Load(ctx, p.page.CurrentPage)
}

// Current returns the current page number.
func (p *Pager) Current() int { return p.page.CurrentPage }

// Last returns the last page number.
func (p *Pager) Last() int { return p.page.LastPage }

// Total returns the number of requests across all pages.
func (p *Pager) Total() int { return p.page.Total }

// Page returns the loaded page.
func (p *Pager) Page() model.RequestPage { return p.page }

// CanPrev is false on the first page.
func (p *Pager) CanPrev() bool { return p.page.CurrentPage > 1 }

// CanNext is false on the last page.
func (p *Pager) CanNext() bool { return p.page.CurrentPage < p.page.LastPage }

// Goto loads page only when it differs from the current one and lies within
// 1..Last. It reports whether a fetch happened.
func (p *Pager) Goto(ctx context.Context, page int) (bool, error) {
	if page == p.page.CurrentPage || page < 1 || page > p.page.LastPage {
		return false, nil
	}
	return true, p.Load(ctx, page)
}

// Next moves one page forward.
func (p *Pager) Next(ctx context.Context) (bool, error) {
	return p.Goto(ctx, p.page.CurrentPage+1)
}

// Prev moves one page back.
func (p *Pager) Prev(ctx context.Context) (bool, error) {
	return p.Goto(ctx, p.page.CurrentPage-1)
}

// Row returns the request displayed with the given row number on the current
// page.
func (p *Pager) Row(number int) (model.Request, bool) {
	for i, r := range p.page.Data {
		if p.page.RowNumber(i) == number {
			return r, true
		}
	}
	return model.Request{}, false
}
