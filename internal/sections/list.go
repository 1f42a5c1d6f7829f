package sections

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("sections: index out of range")
	ErrSectionNotFound = errors.New("sections: section not found")
)

// MoveUp swaps the section at index with its predecessor. Moving the first
// section up is a no-op. The input slice is left untouched.
func MoveUp(list []Section, index int) ([]Section, error) {
	if err := checkIndex(list, index); err != nil {
		return nil, err
	}
	out := clone(list)
	if index > 0 {
		out[index-1], out[index] = out[index], out[index-1]
	}
	return out, nil
}

// MoveDown swaps the section at index with its successor. Moving the last
// section down is a no-op.
func MoveDown(list []Section, index int) ([]Section, error) {
	if err := checkIndex(list, index); err != nil {
		return nil, err
	}
	out := clone(list)
	if index < len(out)-1 {
		out[index+1], out[index] = out[index], out[index+1]
	}
	return out, nil
}

// Insert places section at index; an index equal to len(list) appends.
func Insert(list []Section, index int, section Section) ([]Section, error) {
	if index < 0 || index > len(list) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	out := make([]Section, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, section)
	out = append(out, list[index:]...)
	return out, nil
}

// Append adds section at the end.
func Append(list []Section, section Section) []Section {
	out := clone(list)
	return append(out, section)
}

// Remove drops the section with id.
func Remove(list []Section, id string) ([]Section, error) {
	index := IndexOf(list, id)
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, id)
	}
	out := make([]Section, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...), nil
}

// Replace swaps the section sharing section.ID in place.
func Replace(list []Section, section Section) ([]Section, error) {
	index := IndexOf(list, section.ID)
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, section.ID)
	}
	out := clone(list)
	out[index] = section
	return out, nil
}

// IndexOf returns the position of the section with id, or -1.
func IndexOf(list []Section, id string) int {
	for i, section := range list {
		if section.ID == id {
			return i
		}
	}
	return -1
}

// OfType returns the sections of kind in page order.
func OfType(list []Section, kind Type) []Section {
	var out []Section
	for _, section := range list {
		if section.Type == kind {
			out = append(out, section)
		}
	}
	return out
}

func checkIndex(list []Section, index int) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}

func clone(list []Section) []Section {
	out := make([]Section, len(list))
	copy(out, list)
	return out
}
