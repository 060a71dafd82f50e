package store

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tania/api"
	"go-tania/client"
	"go-tania/fakebackend"
	"go-tania/models"
)

func newTestStore(t *testing.T) (*Store, *fakebackend.Backend) {
	t.Helper()
	backend := fakebackend.New()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL + client.DefaultAPIPrefix)
	require.NoError(t, err)
	return New(api.New(c.WithToken(backend.Token))), backend
}

func TestFetchFarmsSelectsFirst(t *testing.T) {
	s, backend := newTestStore(t)
	first := backend.SeedFarm("First")
	backend.SeedFarm("Second")

	farms, err := s.Farm.FetchFarms(context.Background())
	require.NoError(t, err)
	assert.Len(t, farms, 2)
	assert.Equal(t, first.UID, s.Farm.Current().UID)
	assert.True(t, s.Farm.HaveFarms())
	assert.False(t, s.User.IsNewUser())
}

func TestSetCurrentFarm(t *testing.T) {
	s, backend := newTestStore(t)
	backend.SeedFarm("First")
	second := backend.SeedFarm("Second")
	_, err := s.Farm.FetchFarms(context.Background())
	require.NoError(t, err)

	farm, err := s.Farm.SetCurrentFarm(second.UID)
	require.NoError(t, err)
	assert.Equal(t, "Second", farm.Name)

	_, err = s.Farm.SetCurrentFarm("missing")
	assert.ErrorIs(t, err, ErrFarmNotFound)
	assert.Equal(t, second.UID, s.Farm.Current().UID)

	_, err = s.Farm.FetchFarms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.UID, s.Farm.Current().UID, "refetch keeps the selected farm")
}

func TestSubmitFarmCreatesThenUpdates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	assert.True(t, s.User.IsNewUser())

	farm, err := s.Farm.SubmitFarm(ctx, models.Farm{Name: "Farm", Type: "ORGANIC"})
	require.NoError(t, err)
	assert.Equal(t, farm, s.Farm.Current())

	farm.Name = "Renamed"
	updated, err := s.Farm.SubmitFarm(ctx, farm)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	want := []models.Farm{updated}
	if diff := cmp.Diff(want, s.Farm.Farms()); diff != "" {
		t.Errorf("farms mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Renamed", s.Farm.Current().Name)
}

func TestFarmReadsReturnCopies(t *testing.T) {
	s, backend := newTestStore(t)
	backend.SeedFarm("Farm")
	_, err := s.Farm.FetchFarms(context.Background())
	require.NoError(t, err)

	farms := s.Farm.Farms()
	farms[0].Name = "changed"
	assert.Equal(t, "Farm", s.Farm.Farms()[0].Name)
}

func TestCropInformationNeedsCurrentFarm(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Farm.FetchCropInformation(context.Background())
	assert.ErrorIs(t, err, ErrNoCurrentFarm)
}

func TestReservoirAndAreaSubmit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	farm, err := s.Farm.CreateFarm(ctx, models.Farm{Name: "Farm"})
	require.NoError(t, err)

	r, err := s.Reservoir.SubmitReservoir(ctx, farm.UID, models.Reservoir{Name: "Tap", Type: models.ReservoirTypeTap})
	require.NoError(t, err)
	assert.Equal(t, []models.Reservoir{r}, s.Reservoir.Reservoirs())

	ar := models.StubArea()
	ar.Name = "Area"
	ar.ReservoirID = r.UID
	created, err := s.Area.SubmitArea(ctx, farm.UID, ar, &api.Photo{FileName: "p.png", Content: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, []models.Area{created}, s.Area.Areas())

	fetched, err := s.Area.FetchAreas(ctx, farm.UID)
	require.NoError(t, err)
	assert.Equal(t, s.Area.Areas(), fetched)
}

func TestTaskCreateKeepsWindow(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	backend.SeedTasks(10)

	_, err := s.Task.FetchTasks(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, s.Task.Tasks(), 10)
	assert.Equal(t, Paging{Total: 10, Pages: 1}, s.Task.Paging())

	created, err := s.Task.SubmitTask(ctx, models.Task{Title: "Water the seedlings"})
	require.NoError(t, err)

	tasks := s.Task.Tasks()
	assert.Len(t, tasks, 10)
	assert.Equal(t, created.UID, tasks[0].UID)
	assert.Equal(t, Paging{Total: 11, Pages: 2}, s.Task.Paging())
}

func TestSetTaskCompletedReplacesTask(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	backend.SeedTasks(2)
	_, err := s.Task.FetchTasks(ctx, 1)
	require.NoError(t, err)

	uid := s.Task.Tasks()[1].UID
	_, err = s.Task.SetTaskCompleted(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, s.Task.Tasks()[1].Status)
	assert.Equal(t, models.TaskStatusCreated, s.Task.Tasks()[0].Status)
}

func TestMaterialCreateFromEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	m := models.StubMaterial()
	m.Name = "Romaine"
	m.Quantity = 5

	created, err := s.Inventory.SubmitMaterial(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, []models.Material{created}, s.Inventory.Materials())
	// 窗口长度 1，页数按 1+1 计算
	assert.Equal(t, Paging{Total: 1, Pages: 1}, s.Inventory.Paging())
}

func TestLocationCountriesFetchedOnce(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		countries, err := s.Location.FetchCountries(ctx)
		require.NoError(t, err)
		assert.Len(t, countries, 2)
	}
	assert.Equal(t, 1, backend.Calls("GET /api/locations/countries"))

	cities, err := s.Location.FetchCities(ctx, "NL")
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestUserStore(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.User.IsAuthenticated())

	s.User.SignIn(models.User{UID: "demo", Username: "demo", Intro: true})
	assert.True(t, s.User.IsAuthenticated())
	assert.False(t, s.User.CanSeeNavigator())

	s.User.CompletedIntro()
	assert.False(t, s.User.Current().Intro)

	s.User.SignOut()
	assert.False(t, s.User.IsAuthenticated())
	assert.Equal(t, "demo", s.User.Current().Username)
}

func TestConcurrentFetches(t *testing.T) {
	s, backend := newTestStore(t)
	farm := backend.SeedFarm("Farm")
	backend.SeedTasks(5)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = s.Farm.FetchFarms(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Task.FetchTasks(context.Background(), 1)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Reservoir.FetchReservoirs(context.Background(), farm.UID)
			_ = s.Farm.Farms()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Task.Tasks(), 5)
	assert.Equal(t, farm.UID, s.Farm.Current().UID)
}
