package entities

import (
	"maps"
	"slices"
)

// IDSet - множество идентификаторов. Используется для лайков и друзей.
type IDSet map[int64]struct{}

// NewIDSet создает множество из переданных идентификаторов.
func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add добавляет id. Возвращает false, если он уже был.
func (s IDSet) Add(id int64) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove удаляет id. Возвращает false, если его не было.
func (s IDSet) Remove(id int64) bool {
	if _, ok := s[id]; !ok {
		return false
	}
	delete(s, id)
	return true
}

// Has сообщает, содержится ли id.
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Len возвращает размер множества. Безопасен для nil.
func (s IDSet) Len() int {
	return len(s)
}

// Sorted возвращает идентификаторы по возрастанию.
func (s IDSet) Sorted() []int64 {
	return slices.Sorted(maps.Keys(s))
}

// Clone возвращает независимую копию, никогда не nil.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Intersect возвращает пересечение двух множеств.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IDSet)
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}
