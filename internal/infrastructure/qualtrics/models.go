// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

// Every Qualtrics v3 response wraps its payload in a "result" envelope.
// Paginated listings additionally carry a nextPage URL inside the result,
// null on the final page.

// envelope is the standard Qualtrics v3 response wrapper
type envelope[T any] struct {
	Result T          `json:"result"`
	Meta   MetaObject `json:"meta"`
}

// pageObject is one page of a paginated listing
type pageObject[T any] struct {
	Elements []T     `json:"elements"`
	NextPage *string `json:"nextPage"`
}

// MetaObject carries the request status block of a response
type MetaObject struct {
	HTTPStatus string `json:"httpStatus"`
	RequestID  string `json:"requestId"`
}

// MailingListObject is a mailing list entry in a directory listing
type MailingListObject struct {
	MailingListID string `json:"mailingListId"`
	Name          string `json:"name"`
	OwnerID       string `json:"ownerId"`
	ContactCount  int    `json:"contactCount"`
}

// ContactObject is one contact record in a mailing list.
// ExtRef carries the institutional identifier; ContactID is the
// directory-assigned record key used for deletion.
type ContactObject struct {
	ContactID string `json:"contactId"`
	ExtRef    string `json:"extRef"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ContactCreateOptions is the body for adding a contact to a mailing list
type ContactCreateOptions struct {
	ExtRef    string `json:"extRef"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// listOptions are the query parameters for paginated listings
type listOptions struct {
	PageSize     int  `url:"pageSize"`
	IncludeCount bool `url:"includeCount,omitempty"`
}

// ExportCreateOptions is the body that starts a response export
type ExportCreateOptions struct {
	Format string `json:"format"`
}

// ExportProgressObject tracks a response export job
type ExportProgressObject struct {
	ProgressID      string  `json:"progressId"`
	PercentComplete float64 `json:"percentComplete"`
	Status          string  `json:"status"`
	FileID          string  `json:"fileId"`
}
