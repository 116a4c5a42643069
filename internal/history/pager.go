package history

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/FisherYu0112/Aix-DB/internal/api"
)

// Conversations is the remote record store the pager keeps in sync with.
// Implemented by api.Client; faked in tests.
type Conversations interface {
	QueryRecords(ctx context.Context, page, pageSize int) (api.QueryResult, error)
	DeleteRecords(ctx context.Context, ids []string) error
}

// FetchRequest is a page query the host should run asynchronously and feed
// back through Apply. Seq identifies the request generation; only the latest
// generation's response is ever applied.
type FetchRequest struct {
	Seq      uint64
	Page     int
	PageSize int
}

// Pager owns the paged conversation list: page cursor, fetched rows, server
// counts and the selection set. It is a synchronous state machine; all I/O
// happens in the host's event loop via FetchRequest/Apply.
type Pager struct {
	log *zap.Logger

	visible  bool
	loading  bool
	page     int
	pageSize int

	total     int
	pageCount int
	rows      []api.Record
	selected  map[string]struct{}

	seq uint64 // latest issued fetch generation
}

func NewPager(pageSize int, log *zap.Logger) *Pager {
	if pageSize <= 0 {
		pageSize = 8
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pager{
		log:      log,
		page:     1,
		pageSize: pageSize,
		selected: map[string]struct{}{},
	}
}

func (p *Pager) Visible() bool      { return p.visible }
func (p *Pager) Loading() bool      { return p.loading }
func (p *Pager) Page() int          { return p.page }
func (p *Pager) PageSize() int      { return p.pageSize }
func (p *Pager) Total() int         { return p.total }
func (p *Pager) PageCount() int     { return p.pageCount }
func (p *Pager) Rows() []api.Record { return p.rows }

// Selected returns the selection set in stable order.
func (p *Pager) Selected() []string {
	out := make([]string, 0, len(p.selected))
	for id := range p.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (p *Pager) IsSelected(id string) bool {
	_, ok := p.selected[id]
	return ok
}

// Open makes the list visible and issues the initial fetch. The page cursor
// is whatever Close left behind (1), not reset here.
func (p *Pager) Open() FetchRequest {
	p.visible = true
	return p.issue()
}

// SetPage moves the page cursor and refetches. Clamping to
// [1, max(pageCount,1)] is the caller's responsibility.
func (p *Pager) SetPage(page int) FetchRequest {
	p.page = page
	return p.issue()
}

// SetPageSize changes the page size and resets to page 1: the old page
// offset is meaningless under a new size.
func (p *Pager) SetPageSize(size int) FetchRequest {
	p.pageSize = size
	p.page = 1
	return p.issue()
}

// Refresh refetches the current page, e.g. after a delete. The cursor stays
// put even if the page has since emptied; an empty page is a valid state.
func (p *Pager) Refresh() FetchRequest {
	return p.issue()
}

// Select replaces the selection set wholesale with the given identifiers.
func (p *Pager) Select(ids []string) {
	p.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p.selected[id] = struct{}{}
	}
}

// DeleteSelected returns the identifiers to bulk-delete, or false when the
// selection is empty (silently ignored, per the empty-selection policy).
func (p *Pager) DeleteSelected() ([]string, bool) {
	if len(p.selected) == 0 {
		return nil, false
	}
	return p.Selected(), true
}

// Close hides the list, resets the cursor to page 1 and drops the cached
// rows so a reopen never flashes stale data. Bumping seq invalidates any
// fetch still in flight.
func (p *Pager) Close() {
	p.visible = false
	p.page = 1
	p.rows = nil
	p.total = 0
	p.pageCount = 0
	p.loading = false
	p.seq++
}

// Apply feeds a fetch response back into the pager. Responses from stale
// generations are dropped. Failures are absorbed: the list goes empty, the
// condition is logged, nothing propagates. Returns whether state changed.
func (p *Pager) Apply(seq uint64, res api.QueryResult, err error) bool {
	if seq != p.seq {
		// A newer fetch is outstanding (or the list was closed); its own
		// Apply owns the loading flag.
		return false
	}
	p.loading = false
	if err != nil {
		p.log.Warn("record fetch failed", zap.Int("page", p.page), zap.Int("page_size", p.pageSize), zap.Error(err))
		p.rows = nil
		p.total = 0
		p.pageCount = 0
		p.selected = map[string]struct{}{}
		return true
	}
	p.rows = res.Records
	p.total = res.TotalCount
	p.pageCount = res.TotalPages

	// Selection must never reference a row that is no longer visible.
	visible := make(map[string]struct{}, len(p.rows))
	for _, r := range p.rows {
		visible[r.ChatID] = struct{}{}
	}
	for id := range p.selected {
		if _, ok := visible[id]; !ok {
			delete(p.selected, id)
		}
	}
	return true
}

func (p *Pager) issue() FetchRequest {
	p.seq++
	p.loading = true
	return FetchRequest{Seq: p.seq, Page: p.page, PageSize: p.pageSize}
}
