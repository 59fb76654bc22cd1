// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migration

import (
	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/schema"
)

// remapDataset assigns dense sequential IDs per entity and rewrites the
// enrollment foreign keys to match. It is a pure function of its input; the
// returned translation table maps entity name to old ID to new ID and is
// persisted alongside the copied rows for audit queries.
func remapDataset(ds *schema.Dataset) (*schema.Dataset, map[string]map[int64]int64) {
	userIDs := make(map[int64]int64, len(ds.Users))
	courseIDs := make(map[int64]int64, len(ds.Courses))
	enrollmentIDs := make(map[int64]int64, len(ds.Enrollments))

	out := &schema.Dataset{
		Users:       make([]types.TenantUser, len(ds.Users)),
		Courses:     make([]types.TenantCourse, len(ds.Courses)),
		Enrollments: make([]types.TenantEnrollment, len(ds.Enrollments)),
	}

	for i, user := range ds.Users {
		userIDs[user.ID] = int64(i + 1)
		user.ID = int64(i + 1)
		out.Users[i] = user
	}
	for i, course := range ds.Courses {
		courseIDs[course.ID] = int64(i + 1)
		course.ID = int64(i + 1)
		out.Courses[i] = course
	}
	for i, enrollment := range ds.Enrollments {
		enrollmentIDs[enrollment.ID] = int64(i + 1)
		enrollment.ID = int64(i + 1)
		enrollment.UserID = userIDs[enrollment.UserID]
		enrollment.CourseID = courseIDs[enrollment.CourseID]
		out.Enrollments[i] = enrollment
	}

	return out, map[string]map[int64]int64{
		"users":       userIDs,
		"courses":     courseIDs,
		"enrollments": enrollmentIDs,
	}
}
