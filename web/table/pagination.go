package table

import "fmt"

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

// PageSizeOptions are the page sizes offered by the page-size selector.
var PageSizeOptions = []int{20, 50, 100}

// PageState is the caller-owned position of a paginated list.
type PageState struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

// Normalize replaces a negative page and a non-positive page size with the defaults.
func (p PageState) Normalize() PageState {
	if p.Page < 0 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p PageState) Offset() int { return p.Page * p.PageSize }

// Pager describes the pagination control for one page of results. It holds no
// state of its own: navigation is reported through the callbacks and the caller
// decides what the new PageState is.
type Pager struct {
	PageState
	TotalCount       int
	CurrentPageCount int
	UsePageSize      bool

	OnChangePage     func(page int)
	OnChangePageSize func(pageSize int)

	PageURL     func(page int) string
	PageSizeURL func(pageSize int) string
}

func (p *Pager) EndPage() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := (p.TotalCount + p.PageSize - 1) / p.PageSize
	return max(pages-1, 0)
}

func (p *Pager) IsFirst() bool { return p.Page == 0 }

func (p *Pager) IsLast() bool { return p.Page >= p.EndPage() }

// Start is the 1-based ordinal of the first record on the page.
func (p *Pager) Start() int { return p.Page*p.PageSize + 1 }

// End is the 1-based ordinal of the last record on the page.
func (p *Pager) End() int { return min(p.Start()+p.CurrentPageCount-1, p.TotalCount) }

// RangeText is the untranslated range caption.
func (p *Pager) RangeText() string {
	return fmt.Sprintf("%d total, showing %d–%d", p.TotalCount, p.Start(), p.End())
}

func (p *Pager) First() bool {
	if p.IsFirst() {
		return false
	}
	p.emitPage(0)
	return true
}

func (p *Pager) Prev() bool {
	if p.IsFirst() {
		return false
	}
	p.emitPage(p.Page - 1)
	return true
}

func (p *Pager) Next() bool {
	if p.IsLast() {
		return false
	}
	p.emitPage(p.Page + 1)
	return true
}

func (p *Pager) Last() bool {
	if p.IsLast() {
		return false
	}
	p.emitPage(p.EndPage())
	return true
}

// ChangePageSize reports a page-size selection. The page is left alone.
func (p *Pager) ChangePageSize(size int) bool {
	if !p.UsePageSize {
		return false
	}
	if p.OnChangePageSize != nil {
		p.OnChangePageSize(size)
	}
	return true
}

func (p *Pager) emitPage(page int) {
	if p.OnChangePage != nil {
		p.OnChangePage(page)
	}
}

type NavButton struct {
	Page     int
	Href     string
	Disabled bool
}

type PageSizeOption struct {
	Size     int
	Href     string
	Selected bool
}

type PaginationView struct {
	TotalCount int
	Start      int
	End        int
	First      NavButton
	Prev       NavButton
	Next       NavButton
	Last       NavButton
	PageSizes  []PageSizeOption
}

// View returns the template view of the control, or nil when there is nothing to page.
func (p *Pager) View() *PaginationView {
	if p.TotalCount == 0 {
		return nil
	}
	endPage := p.EndPage()
	v := &PaginationView{
		TotalCount: p.TotalCount,
		Start:      p.Start(),
		End:        p.End(),
		First:      p.button(0, p.IsFirst()),
		Prev:       p.button(p.Page-1, p.IsFirst()),
		Next:       p.button(p.Page+1, p.IsLast()),
		Last:       p.button(endPage, p.IsLast()),
	}
	if p.UsePageSize {
		for _, size := range PageSizeOptions {
			opt := PageSizeOption{Size: size, Selected: size == p.PageSize}
			if p.PageSizeURL != nil {
				opt.Href = p.PageSizeURL(size)
			}
			v.PageSizes = append(v.PageSizes, opt)
		}
	}
	return v
}

func (p *Pager) button(page int, disabled bool) NavButton {
	b := NavButton{Page: page, Disabled: disabled}
	if !disabled && p.PageURL != nil {
		b.Href = p.PageURL(page)
	}
	return b
}
