// ABOUTME: Courses listing page and the courses layout that wraps whichever child route is active.
// ABOUTME: The layout only hosts the slot; route selection belongs to the route table and router.
package page

import (
	"fmt"
	"html/template"
)

// Courses is the index child of the courses layout.
type Courses struct {
	docs DocSource
	meta Meta
}

// NewCourses returns a constructor for the courses listing page.
func NewCourses(docs DocSource, meta Meta) Constructor {
	return func() Component {
		return Courses{docs: docs, meta: meta}
	}
}

func (p Courses) Meta() Meta {
	return p.meta
}

func (p Courses) Render(template.HTML) (template.HTML, error) {
	body, err := p.docs.Doc("courses")
	if err != nil {
		return "", fmt.Errorf("courses page: %w", err)
	}
	return execute("courses", body)
}

// CoursesLayout wraps nested course routes in the main content container.
type CoursesLayout struct{}

// NewCoursesLayout returns a constructor for the courses layout.
func NewCoursesLayout() Constructor {
	return func() Component {
		return CoursesLayout{}
	}
}

// Meta is empty so the active child's metadata wins.
func (CoursesLayout) Meta() Meta {
	return Meta{}
}

func (CoursesLayout) Render(slot template.HTML) (template.HTML, error) {
	return execute("courses_layout", slot)
}
