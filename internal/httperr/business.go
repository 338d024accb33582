package httperr

import "errors"

// BusinessError is a domain rule violation tagged with a stable code
// ("time_conflict", "slot_unavailable", "invalid_state", "*_not_found",
// "invalid_date_or_time", ...). Handlers map codes onto HTTP statuses;
// everything untagged is treated as a storage fault.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
