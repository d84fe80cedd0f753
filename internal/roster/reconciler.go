// Package roster keeps the team roster and the team-size counter from
// diverging. The counter and the list are two separately stored facts; every
// mutation goes through this package so they always change together.
package roster

import "github.com/forgeboard/forgeboard/internal/types"

// AddMember appends candidate to the roster unless its uid is already
// present, incrementing TeamSize by exactly one on insert. Returns true if
// the roster changed.
func AddMember(p *types.ProjectProgress, candidate types.Assignment) bool {
	for _, a := range p.Roster {
		if a.UID == candidate.UID {
			return false
		}
	}
	p.Roster = append(p.Roster, candidate)
	p.TeamSize++
	return true
}

// RemoveMember removes the entry with the given uid and decrements TeamSize,
// flooring at zero so a drifted counter can never go negative. Returns true
// if the roster changed.
func RemoveMember(p *types.ProjectProgress, uid string) bool {
	for i, a := range p.Roster {
		if a.UID == uid {
			p.Roster = append(p.Roster[:i], p.Roster[i+1:]...)
			if p.TeamSize > 0 {
				p.TeamSize--
			}
			return true
		}
	}
	return false
}

// SyncSize resets TeamSize to the roster length. Used when an admin replaces
// the roster wholesale through a bulk patch, so the paired fields still
// mutate in one operation.
func SyncSize(p *types.ProjectProgress) {
	p.TeamSize = len(p.Roster)
}
