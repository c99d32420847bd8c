package request

import (
	"testing"

	"career-hub/internal/domain/employee"
)

func TestRequiredStages_TruthTable(t *testing.T) {
	cases := []struct {
		name       string
		role       employee.Role
		self       bool
		hasManager bool
		want       []Stage
	}{
		{"employee self with manager", employee.RoleEmployee, true, true, []Stage{StageManager, StageHR}},
		{"employee self without manager", employee.RoleEmployee, true, false, []Stage{StageHR}},
		{"employee for other with manager", employee.RoleEmployee, false, true, []Stage{StageManager, StageHR}},
		{"manager with manager", employee.RoleManager, true, true, []Stage{StageManager, StageHR}},
		{"manager without manager", employee.RoleManager, false, false, []Stage{StageHR}},
		{"hr requester", employee.RoleHR, false, true, []Stage{StageHR}},
		{"hr self", employee.RoleHR, true, true, []Stage{StageHR}},
		{"admin requester", employee.RoleAdmin, false, true, []Stage{StageHR}},
		{"admin without manager", employee.RoleAdmin, true, false, []Stage{StageHR}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RequiredStages(Facts{
				Type:          TypePositionChange,
				RequesterRole: tc.role,
				SelfRequest:   tc.self,
				HasManager:    tc.hasManager,
			})
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestAutoApprovalEligible(t *testing.T) {
	cases := []struct {
		name  string
		facts Facts
		want  bool
	}{
		{"admin with salary change", Facts{RequesterRole: employee.RoleAdmin, SalaryChange: true}, true},
		{"admin with department change", Facts{RequesterRole: employee.RoleAdmin, DepartmentChange: true}, true},
		{"employee no risk fields", Facts{RequesterRole: employee.RoleEmployee}, true},
		{"employee with salary change", Facts{RequesterRole: employee.RoleEmployee, SalaryChange: true}, false},
		{"manager with department change", Facts{RequesterRole: employee.RoleManager, DepartmentChange: true}, false},
		{"hr with salary change", Facts{RequesterRole: employee.RoleHR, SalaryChange: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AutoApprovalEligible(tc.facts); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
