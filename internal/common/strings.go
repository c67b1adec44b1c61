package common

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"
