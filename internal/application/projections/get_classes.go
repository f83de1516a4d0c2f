package projections

import (
	"context"
	"fmt"

	classStore "attendci/internal/adapters/storage/class"
)

// GetClassesClassStore defines the class store interface for the class list.
type GetClassesClassStore interface {
	ListWithTeacher(ctx context.Context) ([]classStore.ClassWithTeacher, error)
}

// GetClassesDeps holds dependencies for the class list projection.
type GetClassesDeps struct {
	ClassStore GetClassesClassStore
}

// ClassRow is one class in the public catalogue.
type ClassRow struct {
	ClassID      string  `json:"ClassID"`
	ClassName    string  `json:"ClassName"`
	ClassSubject string  `json:"ClassSubject"`
	ClassBatch   string  `json:"ClassBatch"`
	ClassPrice   float64 `json:"ClassPrice"`
	TeacherName  string  `json:"TeacherName"`
}

// QueryGetClasses lists every class with its teacher's display name.
// POST: Classes without a matching teacher still appear, with an empty name
func QueryGetClasses(ctx context.Context, deps GetClassesDeps) ([]ClassRow, error) {
	classes, err := deps.ClassStore.ListWithTeacher(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	rows := make([]ClassRow, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, ClassRow{
			ClassID:      c.ClassID,
			ClassName:    c.ClassName,
			ClassSubject: c.ClassSubject,
			ClassBatch:   c.ClassBatch,
			ClassPrice:   c.ClassPrice,
			TeacherName:  c.TeacherName,
		})
	}
	return rows, nil
}
