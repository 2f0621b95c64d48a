// Package fixture supplies the three fixed in-memory tables the query
// scenarios run against: employees, departments, and salary grade
// bands. The data mirrors the classic EMP/DEPT/SALGRADE tutorial
// schema, reduced to the rows the scenarios depend on.
//
// All tables are constructed once per Set and are read-only for the
// lifetime of any query; accessors return fresh copies so callers can
// never mutate shared state.
package fixture

import (
	"slices"

	"github.com/relforge/scottql/internal/relq"
)

// Employee is one row of the employee table. Commission is optional:
// most employees have none, and an absent commission is distinct from
// a commission of zero.
type Employee struct {
	Name       string
	Job        string
	DeptNo     int
	Salary     float64
	Commission relq.Option[float64]
}

// Department is one row of the department table. DeptNo is unique.
type Department struct {
	DeptNo   int
	Name     string
	Location string
}

// SalaryGrade is one inclusive salary band. Bands are non-overlapping
// and cover every fixture salary (enforced by Validate, not assumed by
// the join operators).
type SalaryGrade struct {
	Grade int
	Low   float64
	High  float64
}

// Set holds the three fixture tables.
type Set struct {
	employees   []Employee
	departments []Department
	grades      []SalaryGrade
}

// New constructs the fixture set. The data is deterministic and
// identical across calls; there is no randomness and no I/O.
func New() *Set {
	return &Set{
		employees: []Employee{
			{Name: "SMITH", Job: "CLERK", DeptNo: 20, Salary: 800, Commission: relq.None[float64]()},
			{Name: "ALLEN", Job: "SALESMAN", DeptNo: 30, Salary: 1600, Commission: relq.Some(300.0)},
			{Name: "WARD", Job: "SALESMAN", DeptNo: 30, Salary: 1250, Commission: relq.Some(500.0)},
			{Name: "JONES", Job: "MANAGER", DeptNo: 20, Salary: 2975, Commission: relq.None[float64]()},
			{Name: "CLARK", Job: "MANAGER", DeptNo: 10, Salary: 2450, Commission: relq.None[float64]()},
			{Name: "SCOTT", Job: "ANALYST", DeptNo: 20, Salary: 3000, Commission: relq.None[float64]()},
			{Name: "KING", Job: "PRESIDENT", DeptNo: 10, Salary: 5000, Commission: relq.None[float64]()},
			{Name: "MILLER", Job: "CLERK", DeptNo: 10, Salary: 1300, Commission: relq.None[float64]()},
		},
		departments: []Department{
			{DeptNo: 10, Name: "ACCOUNTING", Location: "NEW YORK"},
			{DeptNo: 20, Name: "RESEARCH", Location: "DALLAS"},
			{DeptNo: 30, Name: "SALES", Location: "CHICAGO"},
			{DeptNo: 40, Name: "OPERATIONS", Location: "BOSTON"},
		},
		grades: []SalaryGrade{
			{Grade: 1, Low: 700, High: 1200},
			{Grade: 2, Low: 1201, High: 1400},
			{Grade: 3, Low: 1401, High: 2000},
			{Grade: 4, Low: 2001, High: 3000},
			{Grade: 5, Low: 3001, High: 9999},
		},
	}
}

// Employees returns a copy of the employee table in fixture order.
func (s *Set) Employees() []Employee {
	return slices.Clone(s.employees)
}

// Departments returns a copy of the department table in fixture order.
func (s *Set) Departments() []Department {
	return slices.Clone(s.departments)
}

// SalaryGrades returns a copy of the salary grade table in band order.
func (s *Set) SalaryGrades() []SalaryGrade {
	return slices.Clone(s.grades)
}
