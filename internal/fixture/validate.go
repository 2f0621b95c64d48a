package fixture

import "fmt"

// Validate checks the structural invariants the grade-matching
// scenarios rely on: every band has low <= high, bands do not overlap,
// and each fixture salary falls inside exactly one band. The range
// join operator itself assumes none of this; the guarantees live in
// the data.
func (s *Set) Validate() error {
	for _, g := range s.grades {
		if g.Low > g.High {
			return fmt.Errorf("grade %d: low bound %v exceeds high bound %v", g.Grade, g.Low, g.High)
		}
	}

	for i, a := range s.grades {
		for _, b := range s.grades[i+1:] {
			if a.Low <= b.High && b.Low <= a.High {
				return fmt.Errorf("grades %d and %d overlap", a.Grade, b.Grade)
			}
		}
	}

	for _, e := range s.employees {
		matches := 0
		for _, g := range s.grades {
			if e.Salary >= g.Low && e.Salary <= g.High {
				matches++
			}
		}
		if matches != 1 {
			return fmt.Errorf("employee %s: salary %v falls in %d grade bands, want exactly 1", e.Name, e.Salary, matches)
		}
	}

	seen := make(map[int]bool, len(s.departments))
	for _, d := range s.departments {
		if seen[d.DeptNo] {
			return fmt.Errorf("duplicate department number %d", d.DeptNo)
		}
		seen[d.DeptNo] = true
	}

	return nil
}
