package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTarget = errors.New("unknown navigation target")
	ErrInvalidRange  = errors.New("invalid result range")
)

// jumpSize шаг переходов "<<" и ">>"
const jumpSize = 5

// TargetKind вид перехода по страницам
type TargetKind string

const (
	TargetFirst TargetKind = "first" // "<<" на пять страниц назад
	TargetPrev  TargetKind = "prev"
	TargetPage  TargetKind = "page"
	TargetNext  TargetKind = "next"
	TargetLast  TargetKind = "last" // ">>" на пять страниц вперёд
)

// Target цель навигации; Page используется только для TargetPage
type Target struct {
	Kind TargetKind `json:"kind"`
	Page int        `json:"page,omitempty"`
}

func First() Target     { return Target{Kind: TargetFirst} }
func Prev() Target      { return Target{Kind: TargetPrev} }
func Next() Target      { return Target{Kind: TargetNext} }
func Last() Target      { return Target{Kind: TargetLast} }
func Page(n int) Target { return Target{Kind: TargetPage, Page: n} }

// ParseTarget разбирает цель навигации из строкового представления
func ParseTarget(kind string, page int) (Target, error) {
	switch TargetKind(strings.ToLower(strings.TrimSpace(kind))) {
	case TargetFirst:
		return First(), nil
	case TargetPrev:
		return Prev(), nil
	case TargetNext:
		return Next(), nil
	case TargetLast:
		return Last(), nil
	case TargetPage:
		return Page(page), nil
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, kind)
}

func (t Target) String() string {
	if t.Kind == TargetPage {
		return fmt.Sprintf("page(%d)", t.Page)
	}
	return string(t.Kind)
}

// QueryState состояние текущего поискового запроса
type QueryState struct {
	QueryText  string `json:"query"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	ActivePage int    `json:"active_page"`
}

// NewQueryState создаёт состояние нового запроса.
// Число страниц фиксировано: searchLimit / pageSize, реальное число совпадений не учитывается.
func NewQueryState(text string, pageSize, searchLimit int) QueryState {
	total := 0
	if pageSize > 0 && searchLimit > 0 {
		total = searchLimit / pageSize
	}
	return QueryState{
		QueryText:  text,
		PageSize:   pageSize,
		TotalPages: total,
		ActivePage: 1,
	}
}

// Offset возвращает смещение первого результата страницы page
func (s QueryState) Offset(page int) int {
	return (page - 1) * s.PageSize
}

// Resolve вычисляет новую активную страницу.
// ok == false означает, что переход невозможен и ничего делать не нужно.
func (s QueryState) Resolve(t Target) (page int, ok bool) {
	switch t.Kind {
	case TargetPage:
		page = t.Page
	case TargetNext:
		page = s.ActivePage + 1
	case TargetPrev:
		page = s.ActivePage - 1
	case TargetLast:
		page = s.ActivePage + jumpSize
	case TargetFirst:
		page = s.ActivePage - jumpSize
	default:
		return 0, false
	}

	if page < 1 || page > s.TotalPages {
		return 0, false
	}
	return page, true
}

// CanNavigate сообщает, приведёт ли переход к смене страницы
func (s QueryState) CanNavigate(t Target) bool {
	_, ok := s.Resolve(t)
	return ok
}
