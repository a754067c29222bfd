package booking

import "fmt"

// Group kinds for derived booking units.  An individual unit contains
// exactly one passenger; a group unit contains everyone on the leg who
// was not flagged to travel as an individual.
const (
	GroupKindIndividual = "INDIVIDUAL"
	GroupKindGroup      = "GROUP"
)

// PassengerAssignment is one entry of a leg's passenger-assignment
// list as the deriver sees it.
type PassengerAssignment struct {
	PassengerID       string
	FullName          string
	TreatAsIndividual bool
}

// DerivedGroup is a booking unit produced by DeriveGroups, ready to be
// inserted by the repository after the leg's existing units have been
// deleted.
type DerivedGroup struct {
	Kind         string
	Label        string
	PassengerIDs []string
}

// DeriveGroups partitions a leg's assignments into booking units.
// Every passenger flagged TreatAsIndividual becomes their own
// individual unit labeled with the passenger's name and the route; all
// remaining passengers are merged into exactly one group unit (or none
// when nobody is grouped).  The function is deterministic: units are
// emitted in assignment order, so re-running it on unchanged input
// yields an identical set.  Persistence-level idempotence (delete all
// existing units for the leg, then insert these) is the repository's
// job.
func DeriveGroups(origin, destination string, assignments []PassengerAssignment) []DerivedGroup {
	route := fmt.Sprintf("%s-%s", origin, destination)
	groups := make([]DerivedGroup, 0, len(assignments)+1)
	var party []string
	for _, a := range assignments {
		if a.TreatAsIndividual {
			groups = append(groups, DerivedGroup{
				Kind:         GroupKindIndividual,
				Label:        fmt.Sprintf("%s (%s)", a.FullName, route),
				PassengerIDs: []string{a.PassengerID},
			})
			continue
		}
		party = append(party, a.PassengerID)
	}
	if len(party) > 0 {
		groups = append(groups, DerivedGroup{
			Kind:         GroupKindGroup,
			Label:        fmt.Sprintf("%s party of %d", route, len(party)),
			PassengerIDs: party,
		})
	}
	return groups
}

// CountKinds tallies the derived units for the deriveGroups response:
// the number of individual units and whether a group unit was created.
func CountKinds(groups []DerivedGroup) (individuals int, groupCreated int) {
	for _, g := range groups {
		if g.Kind == GroupKindIndividual {
			individuals++
		} else {
			groupCreated = 1
		}
	}
	return individuals, groupCreated
}
