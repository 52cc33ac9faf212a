package platform

// Vector records, per axis, whether a candidate identifier concretely pins
// the corresponding host axis. Axis order is fixed by priority:
// architecture > vendor > OS > ABI.
//
// Vectors order lexicographically in that priority order: a true ahead of a
// false at the highest-priority differing axis wins. An identifier pinning
// the architecture therefore outranks one pinning any combination of
// lower-priority axes. Identical vectors are equal-ranked.
type Vector [4]bool

// Specificity computes the vector for candidate against host. An element is
// true iff the candidate's axis is concrete and equal to the host's axis.
// Eligibility is decided by [Identifier.Matches], never by this vector.
func Specificity(candidate, host Identifier) Vector {
	return Vector{
		axisPins(candidate.Arch, host.Arch),
		axisPins(candidate.Vendor, host.Vendor),
		axisPins(candidate.OS, host.OS),
		axisPins(candidate.ABI, host.ABI),
	}
}

func axisPins(candidate, host Value) bool {
	return !candidate.IsWildcard() && candidate == host
}

// Compare returns -1 if v ranks below other, +1 if above, 0 if equal-ranked.
func (v Vector) Compare(other Vector) int {
	for i := range v {
		if v[i] == other[i] {
			continue
		}
		if v[i] {
			return 1
		}
		return -1
	}
	return 0
}

// Max returns the higher-ranked of v and other.
func (v Vector) Max(other Vector) Vector {
	if v.Compare(other) >= 0 {
		return v
	}
	return other
}
