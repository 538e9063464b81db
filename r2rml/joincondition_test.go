package r2rml

import "testing"

func TestJoinConditionIsValid(t *testing.T) {
	if !(JoinCondition{ChildColumn: "C", ParentColumn: "P"}).IsValid() {
		t.Errorf("a join condition with both columns set must be valid")
	}
	if (JoinCondition{ChildColumn: "", ParentColumn: "P"}).IsValid() {
		t.Errorf("a join condition missing the child column must be invalid")
	}
	if (JoinCondition{ChildColumn: "C", ParentColumn: ""}).IsValid() {
		t.Errorf("a join condition missing the parent column must be invalid")
	}
}
