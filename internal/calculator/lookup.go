package calculator

import "github.com/mmynk/splitbill/internal/models"

// PersonLookup resolves a person ID to the current person record.
// It is only used for rendering; calculations never depend on it.
type PersonLookup interface {
	LookupPerson(id string) (models.Person, bool)
}

// PeopleIndex is an in-memory PersonLookup.
type PeopleIndex map[string]models.Person

// NewPeopleIndex indexes people by ID.
func NewPeopleIndex(people []models.Person) PeopleIndex {
	idx := make(PeopleIndex, len(people))
	for _, p := range people {
		idx[p.ID] = p
	}
	return idx
}

// LookupPerson implements PersonLookup.
func (idx PeopleIndex) LookupPerson(id string) (models.Person, bool) {
	p, ok := idx[id]
	return p, ok
}

// WithNames returns a copy of the summary whose person references carry the
// names known to lookup. People the lookup does not know keep the name found
// on the bill.
func (s Summary) WithNames(lookup PersonLookup) Summary {
	out := s
	out.People = make([]PersonSummary, len(s.People))
	for i, p := range s.People {
		if person, ok := lookup.LookupPerson(p.Person.ID); ok {
			p.Person = person
		}
		out.People[i] = p
	}
	return out
}
