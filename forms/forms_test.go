package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindForm(t *testing.T, values url.Values, dst any) error {
	t.Helper()
	require.NoError(t, RegisterValidators())
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c.ShouldBind(dst)
}

func TestEmptyFarmFormShowsRequiredErrors(t *testing.T) {
	var in FarmInput
	err := bindForm(t, url.Values{}, &in)
	require.Error(t, err)

	errs := FieldErrors(err)
	for _, field := range []string{"name", "type", "latitude", "longitude", "country", "city"} {
		assert.Equal(t, "The "+field+" field is required.", errs[field], field)
	}
	assert.NotContains(t, errs, "description")
}

func TestFarmFormValid(t *testing.T) {
	var in FarmInput
	err := bindForm(t, url.Values{
		"name":      {"My Farm 1"},
		"type":      {"ORGANIC"},
		"latitude":  {"-6.2"},
		"longitude": {"106.8"},
		"country":   {"ID"},
		"city":      {"JK"},
	}, &in)
	require.NoError(t, err)
	farm := in.ToModel()
	assert.Equal(t, "My Farm 1", farm.Name)
	assert.False(t, farm.IsPersisted())
}

func TestFarmFormRejectsBadValues(t *testing.T) {
	var in FarmInput
	err := bindForm(t, url.Values{
		"name":      {"Farm!"},
		"type":      {"ORGANIC"},
		"latitude":  {"91"},
		"longitude": {"200"},
		"country":   {"ID"},
		"city":      {"JK"},
	}, &in)
	errs := FieldErrors(err)
	assert.Equal(t, "The name should be alphanumeric, space, hypen, or underscore", errs["name"])
	assert.Equal(t, "The latitude is not latitude value", errs["latitude"])
	assert.Equal(t, "The longitude is not longitude value", errs["longitude"])
}

func TestReservoirBucketRequiresCapacity(t *testing.T) {
	var bucket ReservoirInput
	err := bindForm(t, url.Values{"name": {"Bucket"}, "type": {"BUCKET"}}, &bucket)
	assert.Equal(t, "The capacity field is required.", FieldErrors(err)["capacity"])

	var tap ReservoirInput
	require.NoError(t, bindForm(t, url.Values{"name": {"Tap"}, "type": {"TAP"}, "capacity": {"9"}}, &tap))
	assert.Zero(t, tap.ToModel().Capacity)

	var filled ReservoirInput
	require.NoError(t, bindForm(t, url.Values{"name": {"Bucket"}, "type": {"BUCKET"}, "capacity": {"12.5"}}, &filled))
	assert.Equal(t, 12.5, filled.ToModel().Capacity)
}

func TestPasswordConfirmation(t *testing.T) {
	var in PasswordInput
	err := bindForm(t, url.Values{
		"old_password":     {"secret"},
		"new_password":     {"secret2"},
		"confirm_password": {"secret3"},
	}, &in)
	assert.Equal(t, "The password confirmation does not match.", FieldErrors(err)["confirm_password"])
}

func TestTaskAssetRequiredOutsideGeneral(t *testing.T) {
	var in TaskInput
	err := bindForm(t, url.Values{
		"title":    {"Check pump"},
		"category": {"RESERVOIR"},
		"priority": {"URGENT"},
		"domain":   {"RESERVOIR"},
		"due_date": {"2026-10-20"},
	}, &in)
	assert.Equal(t, "The asset_id field is required.", FieldErrors(err)["asset_id"])

	var general TaskInput
	require.NoError(t, bindForm(t, url.Values{
		"title":    {"Team meeting"},
		"category": {"GENERAL"},
		"priority": {"NORMAL"},
		"domain":   {"GENERAL"},
	}, &general))
	assert.Equal(t, "CREATED", general.ToModel().Status)
}

func TestFieldErrorsNonValidation(t *testing.T) {
	var in AreaInput
	err := bindForm(t, url.Values{"size": {"big"}}, &in)
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "form")
}

func TestAlphaNumSpace(t *testing.T) {
	for _, ok := range []string{"A", "Farm 1", "my_farm-2", "ab"} {
		assert.True(t, alphaNumSpace.MatchString(ok), ok)
	}
	for _, bad := range []string{"", " lead", "trail ", "farm!", "-x"} {
		assert.False(t, alphaNumSpace.MatchString(bad), bad)
	}
}

func TestReservoirCapacityVisibility(t *testing.T) {
	schema, ok := Lookup("reservoir")
	require.True(t, ok)

	fields, err := schema.Visible(map[string]any{"type": "BUCKET"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "type", "capacity"}, names(fields))

	fields, err = schema.Visible(map[string]any{"type": "TAP"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "type"}, names(fields))

	fields, err = schema.Visible(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "type"}, names(fields))
}

func TestMaterialTypeDetailVisibility(t *testing.T) {
	schema, _ := Lookup("material")
	fields, err := schema.Visible(map[string]any{"type": "AGROCHEMICAL"})
	require.NoError(t, err)
	var labels []string
	for _, f := range fields {
		if f.Name == "type_detail" {
			labels = append(labels, f.Label)
		}
	}
	assert.Equal(t, []string{"Chemical Type"}, labels)

	fields, err = schema.Visible(map[string]any{"type": "OTHER"})
	require.NoError(t, err)
	assert.NotContains(t, names(fields), "type_detail")
}

func TestSchemaNames(t *testing.T) {
	assert.Equal(t, []string{"area", "crop", "farm", "login", "material", "note", "password", "reservoir", "task"}, Names())
	_, ok := Lookup("unknown")
	assert.False(t, ok)
}

func names(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
