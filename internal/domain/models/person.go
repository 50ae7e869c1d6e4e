// internal/domain/models/person.go
package models

// Person is a canonical identity record produced by the subjects
// normalizer. It is immutable once constructed; equality is by the
// identifier fields (UhUUID, falling back to Username), never by
// display name.
type Person struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	UhUUID   string `json:"uhUuid"`
}

// NewPerson constructs a Person from its three identifying fields.
func NewPerson(name, username, uhUUID string) Person {
	return Person{Name: name, Username: username, UhUUID: uhUUID}
}

// Key returns the identifier used for membership equality: the UhUUID
// when present, otherwise the username. Two Persons with the same key
// are the same member for group-algebra purposes.
func (p Person) Key() string {
	if p.UhUUID != "" {
		return p.UhUUID
	}
	return p.Username
}

// SameIdentity reports whether p and o refer to the same member.
func (p Person) SameIdentity(o Person) bool {
	return p.Key() == o.Key()
}
