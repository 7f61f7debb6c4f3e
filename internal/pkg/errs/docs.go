// Package errs holds the typed errors shared by every layer of the storefront
// order service.
//
// Each kind pairs a sentinel with a struct carrying details:
//   - ErrValueIsRequired / ValueIsRequiredError: a mandatory field is blank
//   - ErrValueIsInvalid / ValueIsInvalidError: a value fails validation
//   - ErrValueIsOutOfRange / ValueIsOutOfRangeError: a number is outside its bounds
//   - ErrObjectNotFound / ObjectNotFoundError: a lookup by id found nothing
//   - ErrVersionIsInvalid / VersionIsInvalidError: a conditional write lost to
//     a concurrent one
//
// The structs unwrap to their sentinel, so callers classify with errors.Is and
// read details with errors.As. The HTTP adapter maps the sentinels to status
// codes.
package errs
