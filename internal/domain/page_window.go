package domain

// ControlKind вид элемента пагинации
type ControlKind string

const (
	ControlPage     ControlKind = "page"
	ControlFirst    ControlKind = "first"
	ControlPrev     ControlKind = "prev"
	ControlNext     ControlKind = "next"
	ControlLast     ControlKind = "last"
	ControlEllipsis ControlKind = "ellipsis"
)

// windowSpan сколько номеров страниц видно одновременно
const windowSpan = 5

// PageControl элемент окна пагинации
type PageControl struct {
	Kind    ControlKind `json:"kind"`
	Page    int         `json:"page,omitempty"`
	Active  bool        `json:"active,omitempty"`
	Enabled bool        `json:"enabled"`
}

// PageWindow упорядоченный набор элементов пагинации
type PageWindow []PageControl

// BuildPageWindow строит окно пагинации.
// Результат зависит только от active и total, но не от того, как пользователь пришёл на страницу.
func BuildPageWindow(active, total int) PageWindow {
	if total <= 0 {
		return PageWindow{}
	}

	state := QueryState{TotalPages: total, ActivePage: active}
	w := make(PageWindow, 0, windowSpan+6)

	switch {
	case total <= windowSpan:
		w = w.pages(1, total, active)

	case active < 4:
		w = w.pages(1, windowSpan, active)
		w = w.nav(ControlNext, state.CanNavigate(Next()))

	case active >= total-2:
		w = w.nav(ControlPrev, state.CanNavigate(Prev()))
		w = w.pages(total-windowSpan+1, total, active)

	default:
		w = w.nav(ControlFirst, state.CanNavigate(First()))
		w = w.nav(ControlPrev, state.CanNavigate(Prev()))
		w = w.pages(1, 1, active)
		w = append(w, PageControl{Kind: ControlEllipsis})
		w = w.pages(active-2, active+2, active)
		w = append(w, PageControl{Kind: ControlEllipsis})
		w = w.pages(total, total, active)
		w = w.nav(ControlNext, state.CanNavigate(Next()))
		w = w.nav(ControlLast, state.CanNavigate(Last()))
	}

	return w
}

func (w PageWindow) pages(from, to, active int) PageWindow {
	for n := from; n <= to; n++ {
		w = append(w, PageControl{Kind: ControlPage, Page: n, Active: n == active, Enabled: true})
	}
	return w
}

func (w PageWindow) nav(kind ControlKind, enabled bool) PageWindow {
	return append(w, PageControl{Kind: kind, Enabled: enabled})
}
