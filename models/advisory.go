package models

// AdvisoryCode identifies a class of non-fatal resolution findings.
type AdvisoryCode string

// AdvisoryStoragePathDefaulted is reported when persistence is enabled but no
// layer supplied a storage path, and the fixed fallback was substituted.
const AdvisoryStoragePathDefaulted AdvisoryCode = "storage-path-defaulted"

// Advisory is a warning produced during resolution. It never stops
// resolution; the value it describes has already been replaced by a defined
// fallback.
type Advisory struct {
	Code    AdvisoryCode `json:"code"`
	Field   string       `json:"field"`
	Message string       `json:"message"`
}

func (a Advisory) String() string {
	return string(a.Code) + ": " + a.Message
}
