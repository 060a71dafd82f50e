package intro

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tania/api"
	"go-tania/client"
	"go-tania/fakebackend"
	"go-tania/models"
	"go-tania/store"
)

func filledDrafts(farm, reservoir, area string) Drafts {
	d := NewDrafts()
	d.Farm.Name = farm
	d.Reservoir.Name = reservoir
	d.Area.Name = area
	return d
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name   string
		drafts Drafts
		want   Step
	}{
		{"empty", NewDrafts(), IntroFarmCreate},
		{"farm filled", filledDrafts("Farm", "", ""), IntroReservoirCreate},
		{"farm and reservoir", filledDrafts("Farm", "Res", ""), IntroAreaCreate},
		{"all filled", filledDrafts("Farm", "Res", "Area"), IntroAreaCreate},
		{"reservoir without farm", filledDrafts("", "Res", "Area"), IntroFarmCreate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.drafts.Position())
		})
	}
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(IntroFarmCreate, IntroReservoirCreate))
	assert.True(t, Allowed(IntroReservoirCreate, IntroFarmCreate))
	assert.True(t, Allowed(IntroReservoirCreate, IntroAreaCreate))
	assert.True(t, Allowed(IntroAreaCreate, IntroReservoirCreate))
	assert.False(t, Allowed(IntroFarmCreate, IntroAreaCreate))
	assert.False(t, Allowed(IntroAreaCreate, IntroFarmCreate))
	assert.False(t, Allowed("", IntroReservoirCreate))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		from, to     Step
		drafts       Drafts
		want         Step
		wantRedirect bool
	}{
		{"new user lands on farm", "", IntroFarmCreate, NewDrafts(), IntroFarmCreate, false},
		{"reservoir before farm", IntroFarmCreate, IntroReservoirCreate, NewDrafts(), IntroFarmCreate, true},
		{"area before farm", "", IntroAreaCreate, NewDrafts(), IntroFarmCreate, true},
		{"forward after farm", IntroFarmCreate, IntroReservoirCreate, filledDrafts("F", "", ""), IntroReservoirCreate, false},
		{"back to farm", IntroReservoirCreate, IntroFarmCreate, filledDrafts("F", "", ""), IntroFarmCreate, false},
		{"skip reservoir", IntroFarmCreate, IntroAreaCreate, filledDrafts("F", "", ""), IntroReservoirCreate, true},
		{"back from area", IntroAreaCreate, IntroReservoirCreate, filledDrafts("F", "R", ""), IntroReservoirCreate, false},
		{"jump from area to farm", IntroAreaCreate, IntroFarmCreate, filledDrafts("F", "R", ""), IntroAreaCreate, true},
		{"direct visit to position", "", IntroAreaCreate, filledDrafts("F", "R", ""), IntroAreaCreate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, redirect := Resolve(tt.from, tt.to, tt.drafts)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRedirect, redirect)
		})
	}
}

func TestParseStep(t *testing.T) {
	s, err := ParseStep("/intro/reservoir")
	require.NoError(t, err)
	assert.Equal(t, IntroReservoirCreate, s)

	s, err = ParseStep("IntroAreaCreate")
	require.NoError(t, err)
	assert.Equal(t, "/intro/area", s.Path())

	_, err = ParseStep("/intro/crop")
	assert.Error(t, err)
	assert.Len(t, Steps(), 3)
}

func newTestFlow(t *testing.T) (*Flow, *store.Store, *fakebackend.Backend) {
	t.Helper()
	backend := fakebackend.New()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL + client.DefaultAPIPrefix)
	require.NoError(t, err)
	a := api.New(c.WithToken(backend.Token))
	st := store.New(a)
	st.User.SignIn(models.User{UID: "demo", Username: "demo", Intro: true})
	return NewFlow(a, st), st, backend
}

func TestFlowOrderingErrors(t *testing.T) {
	f, _, _ := newTestFlow(t)
	ctx := context.Background()

	f.SetReservoir(models.Reservoir{Name: "Res", Type: models.ReservoirTypeTap})
	_, err := f.CreateReservoir(ctx)
	assert.ErrorIs(t, err, ErrFarmNotCreated)

	_, err = f.CreateArea(ctx)
	assert.ErrorIs(t, err, ErrFarmNotCreated)

	f.SetFarm(models.Farm{Name: "Farm"})
	_, err = f.CreateFarm(ctx)
	require.NoError(t, err)
	_, err = f.CreateArea(ctx)
	assert.ErrorIs(t, err, ErrReservoirNotCreated)
}

func TestFlowCompletes(t *testing.T) {
	f, st, backend := newTestFlow(t)
	ctx := context.Background()

	f.SetFarm(models.Farm{Name: "Farm", Type: "ORGANIC"})
	farm, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	again, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	assert.Equal(t, farm, again)
	assert.Equal(t, 1, backend.Calls("POST /api/farms"))
	assert.Equal(t, IntroReservoirCreate, f.Position())

	f.SetReservoir(models.Reservoir{Name: "Bucket", Type: models.ReservoirTypeBucket, Capacity: 20})
	reservoir, err := f.CreateReservoir(ctx)
	require.NoError(t, err)
	d := f.Drafts()
	assert.Equal(t, reservoir.UID, d.Area.ReservoirID)
	assert.Equal(t, farm.UID, d.Area.FarmID)
	assert.Equal(t, IntroAreaCreate, f.Position())

	area := d.Area
	area.Name = "Seeding Area"
	area.Size = 1.5
	f.SetArea(area, &Photo{FileName: "area.jpg", Data: []byte("photo")})
	created, err := f.CreateArea(ctx)
	require.NoError(t, err)

	assert.Equal(t, "/api/farms/"+farm.UID+"/areas/"+created.UID+"/photos", created.Photo)
	assert.Equal(t, []byte("photo"), backend.Photo(created.UID))
	assert.Equal(t, []models.Farm{farm}, st.Farm.Farms())
	assert.Equal(t, farm.UID, st.Farm.Current().UID)
	assert.Equal(t, []models.Reservoir{reservoir}, st.Reservoir.Reservoirs())
	assert.Equal(t, []models.Area{created}, st.Area.Areas())
	assert.False(t, st.User.Current().Intro)
	assert.False(t, st.User.IsNewUser())
	assert.Equal(t, NewDrafts(), f.Drafts())
}

func TestFlowPassesBackendError(t *testing.T) {
	f, _, _ := newTestFlow(t)
	f.SetFarm(models.Farm{Name: "Farm"})
	_, err := f.CreateFarm(context.Background())
	require.NoError(t, err)

	f.SetReservoir(models.Reservoir{Name: "Bucket", Type: models.ReservoirTypeBucket})
	_, err = f.CreateReservoir(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "capacity", apiErr.FieldName)
	assert.False(t, f.Drafts().Reservoir.IsPersisted())
}

func TestSetAreaKeepsReservoirAndFarm(t *testing.T) {
	f, _, _ := newTestFlow(t)
	ctx := context.Background()
	f.SetFarm(models.Farm{Name: "Farm", Type: "ORGANIC"})
	farm, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	f.SetReservoir(models.Reservoir{Name: "Tap", Type: models.ReservoirTypeTap})
	reservoir, err := f.CreateReservoir(ctx)
	require.NoError(t, err)

	f.SetArea(models.Area{Name: "Area", Size: 1}, nil)
	d := f.Drafts()
	assert.Equal(t, reservoir.UID, d.Area.ReservoirID)
	assert.Equal(t, farm.UID, d.Area.FarmID)
	assert.Equal(t, "Area", d.Area.Name)
}

func TestSetFarmIgnoresUID(t *testing.T) {
	f, _, backend := newTestFlow(t)
	ctx := context.Background()

	f.SetFarm(models.Farm{UID: "farm-999", Name: "Farm"})
	assert.False(t, f.Drafts().Farm.IsPersisted())
	farm, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "farm-999", farm.UID)

	f.SetFarm(models.Farm{Name: "Farm"})
	assert.Equal(t, farm.UID, f.Drafts().Farm.UID)
	_, err = f.CreateFarm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Calls("POST /api/farms"))
	assert.Equal(t, 0, backend.Calls("PUT /api/farms/"+farm.UID))
}

func TestFlowUpdatesChangedDrafts(t *testing.T) {
	f, _, backend := newTestFlow(t)
	ctx := context.Background()

	f.SetFarm(models.Farm{Name: "Farm", Type: "ORGANIC"})
	farm, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	f.SetReservoir(models.Reservoir{Name: "Tap", Type: models.ReservoirTypeTap})
	reservoir, err := f.CreateReservoir(ctx)
	require.NoError(t, err)

	f.SetFarm(models.Farm{Name: "Renamed", Type: "ORGANIC"})
	updated, err := f.CreateFarm(ctx)
	require.NoError(t, err)
	assert.Equal(t, farm.UID, updated.UID)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1, backend.Calls("PUT /api/farms/"+farm.UID))

	f.SetReservoir(models.Reservoir{UID: "reservoir-999", Name: "Bucket", Type: models.ReservoirTypeBucket, Capacity: 20})
	r, err := f.CreateReservoir(ctx)
	require.NoError(t, err)
	assert.Equal(t, reservoir.UID, r.UID)
	assert.Equal(t, farm.UID, r.FarmID)
	assert.Equal(t, 1, backend.Calls("PUT /api/farms/reservoirs/"+reservoir.UID))
	assert.Equal(t, 1, backend.Calls("POST /api/farms/"+farm.UID+"/reservoirs"))

	_, err = f.CreateReservoir(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Calls("PUT /api/farms/reservoirs/"+reservoir.UID))

	d := f.Drafts()
	assert.Equal(t, reservoir.UID, d.Area.ReservoirID)
	assert.Equal(t, farm.UID, d.Area.FarmID)
}
