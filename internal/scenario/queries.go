package scenario

import (
	"math"
	"sort"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/relq"
)

// QueryFunc is a named query program: a pure function from the fixture
// tables to a result set.
type QueryFunc func(*fixture.Set) *ResultSet

// queries maps program names (referenced by scenario files) to their
// implementations. Column names follow the EMP/DEPT/SALGRADE schema so
// results line up with the SQL oracle.
var queries = map[string]QueryFunc{
	"employees_with_job_salesman":  employeesWithJobSalesman,
	"dept30_by_salary_desc":        dept30BySalaryDesc,
	"chicago_employees":            chicagoEmployees,
	"emp_dept_join":                empDeptJoin,
	"salary_grades":                salaryGrades,
	"dept_avg_salary":              deptAvgSalary,
	"above_dept_average":           aboveDeptAverage,
	"employees_with_commission":    employeesWithCommission,
	"employees_without_commission": employeesWithoutCommission,
	"dept_headcount":               deptHeadcount,
	"new_york_employees":           newYorkEmployees,
	"employee_roster":              employeeRoster,
}

// Lookup returns the query program registered under name.
func Lookup(name string) (QueryFunc, bool) {
	q, ok := queries[name]
	return q, ok
}

// Names returns all registered program names, sorted.
func Names() []string {
	names := make([]string, 0, len(queries))
	for n := range queries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// commCell renders an optional commission as a result cell: the value
// when present, nil when absent.
func commCell(o relq.Option[float64]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

// round2 rounds to two decimal places for reported averages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func employeesWithJobSalesman(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "job", "deptno", "sal", "comm")
	sales := relq.Filter(fx.Employees(), func(e fixture.Employee) bool {
		return e.Job == "SALESMAN"
	})
	for _, e := range sales {
		rs.Append(e.Name, e.Job, e.DeptNo, e.Salary, commCell(e.Commission))
	}
	return rs
}

func dept30BySalaryDesc(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "sal")
	dept30 := relq.Filter(fx.Employees(), func(e fixture.Employee) bool {
		return e.DeptNo == 30
	})
	for _, e := range relq.SortBy(dept30, func(e fixture.Employee) float64 { return e.Salary }, true) {
		rs.Append(e.Name, e.Salary)
	}
	return rs
}

func chicagoEmployees(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "deptno", "loc")
	chicago := relq.Filter(fx.Departments(), func(d fixture.Department) bool {
		return d.Location == "CHICAGO"
	})
	type empLoc struct {
		Name   string
		DeptNo int
		Loc    string
	}
	joined := relq.Join(fx.Employees(), chicago,
		func(e fixture.Employee) int { return e.DeptNo },
		func(d fixture.Department) int { return d.DeptNo },
		func(e fixture.Employee, d fixture.Department) empLoc {
			return empLoc{e.Name, e.DeptNo, d.Location}
		})
	for _, r := range joined {
		rs.Append(r.Name, r.DeptNo, r.Loc)
	}
	return rs
}

func empDeptJoin(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "dname")
	type empDept struct {
		EmpName  string
		DeptName string
	}
	joined := relq.Join(fx.Employees(), fx.Departments(),
		func(e fixture.Employee) int { return e.DeptNo },
		func(d fixture.Department) int { return d.DeptNo },
		func(e fixture.Employee, d fixture.Department) empDept {
			return empDept{e.Name, d.Name}
		})
	for _, r := range joined {
		rs.Append(r.EmpName, r.DeptName)
	}
	return rs
}

func salaryGrades(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "sal", "grade")
	type empGrade struct {
		Name   string
		Salary float64
		Grade  int
	}
	joined := relq.RangeJoin(fx.Employees(), fx.SalaryGrades(),
		func(e fixture.Employee, g fixture.SalaryGrade) bool {
			return e.Salary >= g.Low && e.Salary <= g.High
		},
		func(e fixture.Employee, g fixture.SalaryGrade) empGrade {
			return empGrade{e.Name, e.Salary, g.Grade}
		})
	for _, r := range joined {
		rs.Append(r.Name, r.Salary, r.Grade)
	}
	return rs
}

func deptAvgSalary(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("deptno", "avg_sal")
	groups := relq.GroupBy(fx.Employees(), func(e fixture.Employee) int { return e.DeptNo })
	for _, g := range groups {
		avg := relq.Avg(g.Rows, func(e fixture.Employee) float64 { return e.Salary })
		rs.Append(g.Key, round2(avg))
	}
	return rs
}

func aboveDeptAverage(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "deptno", "sal")
	above := relq.FilterByGroupStat(fx.Employees(),
		func(e fixture.Employee) int { return e.DeptNo },
		func(g []fixture.Employee) float64 {
			return relq.Avg(g, func(e fixture.Employee) float64 { return e.Salary })
		},
		func(e fixture.Employee, avg float64) bool { return e.Salary > avg })
	for _, e := range above {
		rs.Append(e.Name, e.DeptNo, e.Salary)
	}
	return rs
}

func employeesWithCommission(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "comm")
	with := relq.Filter(fx.Employees(), func(e fixture.Employee) bool {
		return e.Commission.IsSome()
	})
	for _, e := range with {
		rs.Append(e.Name, commCell(e.Commission))
	}
	return rs
}

func employeesWithoutCommission(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename")
	without := relq.Filter(fx.Employees(), func(e fixture.Employee) bool {
		return !e.Commission.IsSome()
	})
	for _, e := range without {
		rs.Append(e.Name)
	}
	return rs
}

func deptHeadcount(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("deptno", "headcount")
	groups := relq.GroupBy(fx.Employees(), func(e fixture.Employee) int { return e.DeptNo })
	for _, g := range groups {
		rs.Append(g.Key, relq.Count(g.Rows))
	}
	return rs
}

func newYorkEmployees(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "deptno")
	// Membership subquery: dept numbers materialized from a prior
	// filter over departments, then used to filter employees.
	newYork := relq.Filter(fx.Departments(), func(d fixture.Department) bool {
		return d.Location == "NEW YORK"
	})
	keys := relq.KeySet(newYork, func(d fixture.Department) int { return d.DeptNo })
	for _, e := range relq.In(fx.Employees(), func(e fixture.Employee) int { return e.DeptNo }, keys) {
		rs.Append(e.Name, e.DeptNo)
	}
	return rs
}

func employeeRoster(fx *fixture.Set) *ResultSet {
	rs := NewResultSet("ename", "job")
	type nameJob struct {
		Name string
		Job  string
	}
	roster := relq.Map(fx.Employees(), func(e fixture.Employee) nameJob {
		return nameJob{e.Name, e.Job}
	})
	for _, r := range relq.SortByCollated(roster, func(r nameJob) string { return r.Name }, relq.NewCollator()) {
		rs.Append(r.Name, r.Job)
	}
	return rs
}
