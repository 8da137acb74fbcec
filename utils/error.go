package utils

import "errors"

// ErrorDataNotReady is the shared sentinel the API answers with while the
// workbook load is still in flight.
var ErrorDataNotReady = errors.New("data is still loading")
