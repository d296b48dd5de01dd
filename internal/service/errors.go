package service

import "fmt"

// Kind identifies the operation that failed.
type Kind int

const (
	KindLookup Kind = iota + 1
	KindList
	KindCreate
	KindUpdate
	KindDelete
)

var kindMessages = map[Kind]string{
	KindLookup: "error getting product by ID",
	KindList:   "error getting products",
	KindCreate: "error creating product",
	KindUpdate: "error updating product",
	KindDelete: "error deleting product",
}

func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("product error kind %d", int(k))
}

// Error wraps a store or discount failure with the product operation it broke.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so callers can test
// errors.Is(err, &service.Error{Kind: service.KindCreate}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil
}
