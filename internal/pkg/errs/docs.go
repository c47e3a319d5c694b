// Package errs holds the error kinds shared by the domain, the use cases and
// the adapters of the production service.
//
// Every kind pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrVersionIsInvalid) with a struct
// carrying the offending parameter. The structs unwrap to their sentinel, so
// callers classify with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.JSON(http.StatusNotFound, ...)
//	}
//
// The HTTP adapter maps the sentinels onto status codes; the plant
// configuration loader reports schema problems as ErrVersionIsInvalid and
// ErrValueIsInvalid.
package errs
