package scenario

import (
	"testing"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, name string) *ResultSet {
	t.Helper()
	q, ok := Lookup(name)
	require.True(t, ok, "query %s not registered", name)
	return q(fixture.New())
}

func TestLookup_UnknownName(t *testing.T) {
	_, ok := Lookup("no_such_query")
	assert.False(t, ok)
}

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(queries))
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "employees_with_job_salesman")
}

func TestEmployeesWithJobSalesman(t *testing.T) {
	rs := run(t, "employees_with_job_salesman")

	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "ALLEN", rs.Rows[0][0])
	assert.Equal(t, "WARD", rs.Rows[1][0])
	for i := range rs.Rows {
		v, _ := rs.Value(i, "job")
		assert.Equal(t, "SALESMAN", v)
	}
}

func TestDept30BySalaryDesc(t *testing.T) {
	rs := run(t, "dept30_by_salary_desc")

	require.Equal(t, 2, rs.Len())
	prev, _ := rs.Value(0, "sal")
	for i := 1; i < rs.Len(); i++ {
		cur, _ := rs.Value(i, "sal")
		assert.GreaterOrEqual(t, prev.(float64), cur.(float64))
		prev = cur
	}
}

func TestChicagoEmployees_AllInDept30(t *testing.T) {
	rs := run(t, "chicago_employees")

	require.NotZero(t, rs.Len())
	for i := range rs.Rows {
		deptno, _ := rs.Value(i, "deptno")
		assert.Equal(t, 30, deptno)
		loc, _ := rs.Value(i, "loc")
		assert.Equal(t, "CHICAGO", loc)
	}
}

func TestEmpDeptJoin_ContainsAllenInSales(t *testing.T) {
	rs := run(t, "emp_dept_join")

	// Every employee has a department in the fixture.
	assert.Equal(t, 8, rs.Len())

	found := false
	for i := range rs.Rows {
		ename, _ := rs.Value(i, "ename")
		dname, _ := rs.Value(i, "dname")
		if ename == "ALLEN" && dname == "SALES" {
			found = true
		}
	}
	assert.True(t, found, "expected row (ALLEN, SALES)")
}

func TestSalaryGrades_AllenInGrade3(t *testing.T) {
	rs := run(t, "salary_grades")

	// One grade per employee: bands cover each salary exactly once.
	assert.Equal(t, 8, rs.Len())

	for i := range rs.Rows {
		ename, _ := rs.Value(i, "ename")
		if ename == "ALLEN" {
			grade, _ := rs.Value(i, "grade")
			assert.Equal(t, 3, grade)
			return
		}
	}
	t.Fatal("ALLEN not found in salary grade result")
}

func TestDeptAvgSalary(t *testing.T) {
	rs := run(t, "dept_avg_salary")

	// Group order follows first occurrence: 20, 30, 10.
	require.Equal(t, 3, rs.Len())
	deptno, _ := rs.Value(0, "deptno")
	assert.Equal(t, 20, deptno)

	for i := range rs.Rows {
		d, _ := rs.Value(i, "deptno")
		if d == 30 {
			avg, _ := rs.Value(i, "avg_sal")
			assert.InDelta(t, 1425.0, avg.(float64), 1e-9)
			assert.Greater(t, avg.(float64), 1000.0)
			return
		}
	}
	t.Fatal("department 30 not found in averages")
}

func TestAboveDeptAverage_IncludesAllen(t *testing.T) {
	rs := run(t, "above_dept_average")

	var names []string
	for i := range rs.Rows {
		ename, _ := rs.Value(i, "ename")
		names = append(names, ename.(string))
	}
	assert.Contains(t, names, "ALLEN")
	// Exactly one above-average earner per department 30 pair.
	assert.Equal(t, []string{"ALLEN", "JONES", "SCOTT", "KING"}, names)
}

func TestCommissionQueries_AbsentIsNotZero(t *testing.T) {
	with := run(t, "employees_with_commission")
	require.Equal(t, 2, with.Len())
	for i := range with.Rows {
		comm, _ := with.Value(i, "comm")
		assert.NotNil(t, comm)
	}

	without := run(t, "employees_without_commission")
	assert.Equal(t, 6, without.Len())

	fx := fixture.New()
	assert.Equal(t, len(fx.Employees()), with.Len()+without.Len())
}

func TestDeptHeadcount_SumsToEmployeeCount(t *testing.T) {
	rs := run(t, "dept_headcount")

	total := 0
	for i := range rs.Rows {
		n, _ := rs.Value(i, "headcount")
		total += n.(int)
	}
	assert.Equal(t, 8, total)
}

func TestNewYorkEmployees_MembershipSubquery(t *testing.T) {
	rs := run(t, "new_york_employees")

	require.Equal(t, 3, rs.Len())
	for i := range rs.Rows {
		deptno, _ := rs.Value(i, "deptno")
		assert.Equal(t, 10, deptno)
	}
}

func TestEmployeeRoster_AlphabeticalByName(t *testing.T) {
	rs := run(t, "employee_roster")

	require.Equal(t, 8, rs.Len())
	first, _ := rs.Value(0, "ename")
	last, _ := rs.Value(7, "ename")
	assert.Equal(t, "ALLEN", first)
	assert.Equal(t, "WARD", last)
}
