package typerr

import (
	"fmt"
	"log/slog"
)

// Errors aggregates diagnostics across a whole build or check pass, so an
// embedding tool can report everything at once instead of halting on the
// first failure.
type Errors struct {
	errs []TypeError
}

func (r *Errors) With(err ...TypeError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	for _, err := range err {
		r.errs = append(r.errs, err)
	}
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []TypeError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// HasCode reports whether any aggregated error carries the given code
func (r *Errors) HasCode(code ErrCode) bool {
	if r == nil {
		return false
	}
	for _, err := range r.errs {
		if err.Code() == code {
			return true
		}
	}
	return false
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
