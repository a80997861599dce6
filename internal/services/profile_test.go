package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfileMergesNestedObjects(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")

	_, err := services.UpdateProfile(ctx, db, candidate.ID, &services.ProfileUpdate{
		Name:     strPtr("Asha R"),
		Location: json.RawMessage(`{"city":"Pune","country":"India"}`),
		Profile:  json.RawMessage(`{"educationLevel":"Graduate","course":"B.Tech / B.E"}`),
	})
	require.NoError(t, err)

	updated, err := services.UpdateProfile(ctx, db, candidate.ID, &services.ProfileUpdate{
		Location:    json.RawMessage(`{"state":"Maharashtra"}`),
		Profile:     json.RawMessage(`{"specialization":"CSE"}`),
		Preferences: json.RawMessage(`{"desiredJobTitles":["Backend Engineer"],"workSchedule":{"days":["Mon"]}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha R", updated.Name)
	assert.Equal(t, models.Location{City: "Pune", State: "Maharashtra", Country: "India"}, updated.Location.Data())
	profile := updated.Profile.Data()
	assert.Equal(t, "Graduate", profile.EducationLevel)
	assert.Equal(t, "B.Tech / B.E", profile.Course)
	assert.Equal(t, "CSE", profile.Specialization)
	prefs := updated.Preferences.Data()
	assert.Equal(t, []string{"Backend Engineer"}, prefs.DesiredJobTitles)
	require.NotNil(t, prefs.WorkSchedule)
	assert.Equal(t, []string{"Mon"}, prefs.WorkSchedule.Days)

	stored, err := services.GetCandidate(ctx, db, candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", stored.Location.Data().City)

	t.Run("invalid education level", func(t *testing.T) {
		_, err := services.UpdateProfile(ctx, db, candidate.ID, &services.ProfileUpdate{
			Profile: json.RawMessage(`{"educationLevel":"Doctorate"}`),
		})
		assert.True(t, types.HasType(err, types.CodeValidation))
	})

	t.Run("patch must be an object", func(t *testing.T) {
		_, err := services.UpdateProfile(ctx, db, candidate.ID, &services.ProfileUpdate{
			Location: json.RawMessage(`["Pune"]`),
		})
		assert.True(t, types.HasType(err, types.CodeValidation))
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := services.UpdateProfile(ctx, db, "00000000-0000-0000-0000-000000000000", &services.ProfileUpdate{Name: strPtr("Nobody")})
		assert.ErrorIs(t, err, types.ErrUserNotFound)
	})
}

func TestProfileSections(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")

	added, err := services.SkillSection.Add(ctx, db, candidate.ID,
		models.Skill{Name: "Go", Proficiency: "Advanced"},
		models.Skill{Name: "SQL", Proficiency: "Intermediate"},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEmpty(t, added[0].ID)
	assert.NotEqual(t, added[0].ID, added[1].ID)

	updated, err := services.SkillSection.Update(ctx, db, candidate.ID, added[1].ID,
		json.RawMessage(`{"proficiency":"Expert","id":"forged"}`))
	require.NoError(t, err)
	assert.Equal(t, added[1].ID, updated.ID)
	assert.Equal(t, "SQL", updated.Name)
	assert.Equal(t, "Expert", updated.Proficiency)

	_, err = services.SkillSection.Update(ctx, db, candidate.ID, added[0].ID, json.RawMessage(`{"proficiency":"Guru"}`))
	assert.True(t, types.HasType(err, types.CodeValidation))

	require.NoError(t, services.SkillSection.Delete(ctx, db, candidate.ID, added[0].ID))
	assert.ErrorIs(t, services.SkillSection.Delete(ctx, db, candidate.ID, added[0].ID), types.ErrSkillNotFound)

	skills, err := services.SkillSection.List(ctx, db, candidate.ID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Expert", skills[0].Proficiency)

	t.Run("other sections are independent", func(t *testing.T) {
		exp, err := services.WorkExperienceSection.Add(ctx, db, candidate.ID, models.WorkExperience{
			JobTitle: "Intern",
			Company:  "Tech Labs",
		})
		require.NoError(t, err)
		require.Len(t, exp, 1)

		_, err = services.EducationSection.Update(ctx, db, candidate.ID, exp[0].ID, json.RawMessage(`{"grade":"A"}`))
		assert.ErrorIs(t, err, types.ErrEducationNotFound)

		_, err = services.CertificationSection.Add(ctx, db, candidate.ID, models.Certification{Name: "CKA", URL: "not a url"})
		assert.True(t, types.HasType(err, types.CodeValidation))

		stored, err := services.GetCandidate(ctx, db, candidate.ID)
		require.NoError(t, err)
		assert.Len(t, stored.WorkExperience.Data(), 1)
		assert.Len(t, stored.Skills.Data(), 1)
		assert.Empty(t, stored.Certifications.Data())
	})
}

func TestSavedJobs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")
	job := testutil.CreateTestJob(t, db, nil, "Data Analyst")
	gone := testutil.CreateTestJob(t, db, nil, "Removed Posting")

	saved, err := services.SaveJob(ctx, db, candidate.ID, job.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Job)
	assert.Equal(t, job.Title, saved.Job.Title)

	_, err = services.SaveJob(ctx, db, candidate.ID, job.ID)
	assert.ErrorIs(t, err, types.ErrAlreadySaved)

	_, err = services.SaveJob(ctx, db, candidate.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, types.ErrJobNotFound)

	_, err = services.SaveJob(ctx, db, candidate.ID, gone.ID)
	require.NoError(t, err)
	require.NoError(t, services.DeleteJob(ctx, db, gone.ID, ""))

	list, err := services.ListSavedJobs(ctx, db, candidate.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, job.ID, list[0].JobID)

	require.NoError(t, services.UnsaveJob(ctx, db, candidate.ID, job.ID))
	assert.ErrorIs(t, services.UnsaveJob(ctx, db, candidate.ID, job.ID), types.ErrJobNotFound)
}
