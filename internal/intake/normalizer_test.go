package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-backend/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validInput() models.RawInput {
	return models.RawInput{
		Vitals: models.Vitals{
			BPSystolic:  intPtr(120),
			BPDiastolic: intPtr(80),
			HeartRate:   intPtr(72),
		},
		Symptoms:  []string{"fatigue"},
		Age:       intPtr(30),
		Sex:       models.SexFemale,
		WorkerID:  "CHW001",
		PatientID: "PAT001",
		Language:  models.LanguageEnglish,
	}
}

func TestNormalize_ValidInput(t *testing.T) {
	ctx, errs := Normalize(validInput())

	require.Empty(t, errs)
	require.NotNil(t, ctx)
	assert.True(t, ctx.IsValid)
	assert.Equal(t, 120, *ctx.BPSystolic)
	assert.Equal(t, 80, *ctx.BPDiastolic)
	assert.True(t, ctx.SymptomFlags["fatigue"])
	assert.False(t, ctx.SymptomFlags["fever"])
	assert.True(t, ctx.HasAnemiaSymptoms)
	assert.False(t, ctx.HasImages)
	assert.False(t, ctx.HasMaternalRiskFactors)
	assert.False(t, ctx.RequiresUrgentCare)
}

func TestNormalize_Deterministic(t *testing.T) {
	input := validInput()
	input.Symptoms = []string{"Headache", " swelling ", "abdominal pain"}
	input.Pregnant = true
	input.GestationalWeeks = intPtr(28)

	first, errs1 := Normalize(input)
	second, errs2 := Normalize(input)

	require.Empty(t, errs1)
	require.Empty(t, errs2)
	assert.Equal(t, first, second)
}

func TestNormalize_SymptomNormalization(t *testing.T) {
	input := validInput()
	input.Symptoms = []string{"Headache", " FEVER ", "abdominal pain", "not_a_symptom"}

	ctx, errs := Normalize(input)

	require.Empty(t, errs)
	assert.True(t, ctx.SymptomFlags["headache"])
	assert.True(t, ctx.SymptomFlags["fever"])
	assert.True(t, ctx.SymptomFlags["abdominal_pain"])
	_, known := ctx.SymptomFlags["not_a_symptom"]
	assert.False(t, known)
}

func TestNormalize_MissingMandatoryFields(t *testing.T) {
	_, errs := Normalize(models.RawInput{})

	require.NotEmpty(t, errs)
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["age"])
	assert.True(t, fields["sex"])
	assert.True(t, fields["worker_id"])
	assert.True(t, fields["patient_id"])
}

func TestNormalize_NegativeAge(t *testing.T) {
	input := validInput()
	input.Age = intPtr(-1)

	ctx, errs := Normalize(input)

	assert.Nil(t, ctx)
	require.Len(t, errs, 1)
	assert.Equal(t, "age", errs[0].Field)
}

func TestNormalize_VitalsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RawInput)
		field  string
	}{
		{"systolic too high", func(r *models.RawInput) { r.Vitals.BPSystolic = intPtr(260) }, "vitals.bp_systolic"},
		{"diastolic too low", func(r *models.RawInput) { r.Vitals.BPDiastolic = intPtr(30) }, "vitals.bp_diastolic"},
		{"glucose too high", func(r *models.RawInput) { r.Vitals.RandomGlucose = intPtr(700) }, "vitals.random_glucose"},
		{"temperature too low", func(r *models.RawInput) { r.Vitals.TemperatureC = floatPtr(30.0) }, "vitals.temperature_c"},
		{"heart rate too high", func(r *models.RawInput) { r.Vitals.HeartRate = intPtr(230) }, "vitals.heart_rate"},
		{"spo2 too low", func(r *models.RawInput) { r.Vitals.SpO2 = intPtr(50) }, "vitals.spo2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			ctx, errs := Normalize(input)

			assert.Nil(t, ctx)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestNormalize_SystolicMustExceedDiastolic(t *testing.T) {
	input := validInput()
	input.Vitals.BPSystolic = intPtr(80)
	input.Vitals.BPDiastolic = intPtr(80)

	ctx, errs := Normalize(input)

	assert.Nil(t, ctx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "greater than diastolic")
}

func TestNormalize_PregnancyInvariants(t *testing.T) {
	t.Run("gestational weeks without pregnant", func(t *testing.T) {
		input := validInput()
		input.GestationalWeeks = intPtr(20)

		ctx, errs := Normalize(input)

		assert.Nil(t, ctx)
		require.Len(t, errs, 1)
		assert.Equal(t, "gestational_weeks", errs[0].Field)
	})

	t.Run("pregnant requires gestational weeks", func(t *testing.T) {
		input := validInput()
		input.Pregnant = true

		ctx, errs := Normalize(input)

		assert.Nil(t, ctx)
		require.Len(t, errs, 1)
		assert.Equal(t, "gestational_weeks", errs[0].Field)
	})

	t.Run("gestational weeks out of range", func(t *testing.T) {
		input := validInput()
		input.Pregnant = true
		input.GestationalWeeks = intPtr(50)

		ctx, errs := Normalize(input)

		assert.Nil(t, ctx)
		require.Len(t, errs, 1)
		assert.Equal(t, "gestational_weeks", errs[0].Field)
	})

	t.Run("pregnant male rejected, not corrected", func(t *testing.T) {
		input := validInput()
		input.Sex = models.SexMale
		input.Pregnant = true
		input.GestationalWeeks = intPtr(20)

		ctx, errs := Normalize(input)

		assert.Nil(t, ctx)
		require.Len(t, errs, 1)
		assert.Equal(t, "pregnant", errs[0].Field)
	})
}

func TestNormalize_MaternalRiskFactors(t *testing.T) {
	input := validInput()
	input.Pregnant = true
	input.GestationalWeeks = intPtr(30)
	input.Vitals.BPSystolic = intPtr(145)
	input.Vitals.BPDiastolic = intPtr(85)

	ctx, errs := Normalize(input)

	require.Empty(t, errs)
	assert.True(t, ctx.HasMaternalRiskFactors)

	// Same vitals without pregnancy must not raise the flag.
	input2 := validInput()
	input2.Vitals.BPSystolic = intPtr(145)
	input2.Vitals.BPDiastolic = intPtr(85)

	ctx2, errs2 := Normalize(input2)
	require.Empty(t, errs2)
	assert.False(t, ctx2.HasMaternalRiskFactors)
}

func TestNormalize_UrgentCareFlag(t *testing.T) {
	input := validInput()
	input.Vitals.BPSystolic = intPtr(165)

	ctx, errs := Normalize(input)

	require.Empty(t, errs)
	assert.True(t, ctx.RequiresUrgentCare)
}

func TestNormalize_HasImages(t *testing.T) {
	input := validInput()
	input.CameraInputs = &models.CameraInputs{ConjunctivaPhoto: "aGVsbG8="}

	ctx, errs := Normalize(input)

	require.Empty(t, errs)
	assert.True(t, ctx.HasImages)
}

func TestNormalize_OfflineFlag(t *testing.T) {
	input := validInput()
	input.OfflineMode = true

	ctx, errs := Normalize(input)

	require.Empty(t, errs)
	assert.True(t, ctx.IsOffline)
}
