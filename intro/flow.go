package intro

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"go-tania/api"
	"go-tania/models"
	"go-tania/store"
)

var (
	// ErrFarmNotCreated 创建水源前必须先创建农场
	ErrFarmNotCreated = errors.New("intro farm has not been created")
	// ErrReservoirNotCreated 创建区域前必须先创建水源
	ErrReservoirNotCreated = errors.New("intro reservoir has not been created")
)

// Photo 区域草稿的图片，提交前保存在内存里
type Photo struct {
	FileName string
	Data     []byte
}

// Drafts 三个步骤的草稿
type Drafts struct {
	Farm      models.Farm      `json:"farm"`
	Reservoir models.Reservoir `json:"reservoir"`
	Area      models.Area      `json:"area"`
}

// NewDrafts 以默认值初始化草稿
func NewDrafts() Drafts {
	return Drafts{
		Farm:      models.StubFarm(),
		Reservoir: models.StubReservoir(),
		Area:      models.StubArea(),
	}
}

// Position 第一个名称为空的草稿对应的步骤，全部填写时停在最后一步
func (d Drafts) Position() Step {
	switch {
	case d.Farm.Name == "":
		return IntroFarmCreate
	case d.Reservoir.Name == "":
		return IntroReservoirCreate
	default:
		return IntroAreaCreate
	}
}

// Flow 一个会话的引导状态
type Flow struct {
	api   *api.API
	store *store.Store

	// submit 串行化创建请求，避免重复提交
	submit sync.Mutex

	mu     sync.RWMutex
	drafts Drafts
	photo  *Photo
	// 已创建的草稿在提交后被修改，需要调用更新接口
	farmChanged      bool
	reservoirChanged bool
}

// NewFlow 创建引导流程，完成后结果写入 st
func NewFlow(a *api.API, st *store.Store) *Flow {
	return &Flow{api: a, store: st, drafts: NewDrafts()}
}

// Drafts 当前草稿
func (f *Flow) Drafts() Drafts {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.drafts
}

// Position 用户应处的步骤
func (f *Flow) Position() Step {
	return f.Drafts().Position()
}

// SetFarm 更新农场草稿。uid 只由流程写入，传入的 uid 被忽略
func (f *Flow) SetFarm(farm models.Farm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	farm.UID = f.drafts.Farm.UID
	if farm.IsPersisted() && farm != f.drafts.Farm {
		f.farmChanged = true
	}
	f.drafts.Farm = farm
}

// SetReservoir 更新水源草稿。uid 和所属农场只由流程写入
func (f *Flow) SetReservoir(r models.Reservoir) {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := f.drafts.Reservoir
	r.UID = saved.UID
	r.FarmID = saved.FarmID
	if r.IsPersisted() {
		r.Notes, r.CreatedDate = saved.Notes, saved.CreatedDate
		if reservoirChanged(saved, r) {
			f.reservoirChanged = true
		}
	}
	f.drafts.Reservoir = r
}

func reservoirChanged(a, b models.Reservoir) bool {
	return a.Name != b.Name || a.Type != b.Type || a.Capacity != b.Capacity
}

// SetArea 更新区域草稿，photo 为 nil 时保留之前的图片。
// 未指定的水源、农场沿用创建水源时写入的值
func (f *Flow) SetArea(ar models.Area, photo *Photo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ar.ReservoirID == "" {
		ar.ReservoirID = f.drafts.Area.ReservoirID
	}
	if ar.FarmID == "" {
		ar.FarmID = f.drafts.Area.FarmID
	}
	ar.UID = f.drafts.Area.UID
	f.drafts.Area = ar
	if photo != nil {
		f.photo = photo
	}
}

// Reset 清空草稿
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = NewDrafts()
	f.photo = nil
	f.farmChanged, f.reservoirChanged = false, false
}

// CreateFarm 创建农场草稿。已创建且未修改时直接返回，修改过则更新
func (f *Flow) CreateFarm(ctx context.Context) (models.Farm, error) {
	f.submit.Lock()
	defer f.submit.Unlock()

	f.mu.RLock()
	draft, changed := f.drafts.Farm, f.farmChanged
	f.mu.RUnlock()

	var (
		farm models.Farm
		err  error
	)
	switch {
	case !draft.IsPersisted():
		farm, err = f.api.CreateFarm(ctx, draft)
	case changed:
		farm, err = f.api.UpdateFarm(ctx, draft)
	default:
		return draft, nil
	}
	if err != nil {
		return models.Farm{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts.Farm = farm
	f.farmChanged = false
	return farm, nil
}

// CreateReservoir 创建水源草稿，并把水源和农场写入区域草稿。
// 已创建且未修改时直接返回，修改过则更新
func (f *Flow) CreateReservoir(ctx context.Context) (models.Reservoir, error) {
	f.submit.Lock()
	defer f.submit.Unlock()

	f.mu.RLock()
	d, changed := f.drafts, f.reservoirChanged
	f.mu.RUnlock()

	if d.Reservoir.IsPersisted() && !changed {
		return d.Reservoir, nil
	}
	if !d.Farm.IsPersisted() {
		return models.Reservoir{}, ErrFarmNotCreated
	}
	var (
		r   models.Reservoir
		err error
	)
	if d.Reservoir.IsPersisted() {
		r, err = f.api.UpdateReservoir(ctx, d.Reservoir)
	} else {
		r, err = f.api.CreateReservoir(ctx, d.Farm.UID, d.Reservoir)
	}
	if err != nil {
		return models.Reservoir{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts.Reservoir = r
	f.reservoirChanged = false
	f.drafts.Area.ReservoirID = r.UID
	f.drafts.Area.FarmID = d.Farm.UID
	return r, nil
}

// CreateArea 创建区域。成功后把农场、水源、区域写入 store，
// 标记引导完成并重置草稿
func (f *Flow) CreateArea(ctx context.Context) (models.Area, error) {
	f.submit.Lock()
	defer f.submit.Unlock()

	f.mu.RLock()
	d, photo := f.drafts, f.photo
	f.mu.RUnlock()

	if d.Area.IsPersisted() {
		return d.Area, nil
	}
	if !d.Farm.IsPersisted() {
		return models.Area{}, ErrFarmNotCreated
	}
	if !d.Reservoir.IsPersisted() {
		return models.Area{}, ErrReservoirNotCreated
	}

	var upload *api.Photo
	if photo != nil {
		upload = &api.Photo{FileName: photo.FileName, Content: bytes.NewReader(photo.Data)}
	}
	area, err := f.api.CreateArea(ctx, d.Farm.UID, d.Area, upload)
	if err != nil {
		return models.Area{}, err
	}
	area.Photo = api.AreaPhotoURL(d.Farm.UID, area.UID)

	f.store.Farm.AddFarm(d.Farm)
	f.store.Reservoir.AddReservoir(d.Reservoir)
	f.store.Area.AddArea(area)
	f.store.User.CompletedIntro()

	f.Reset()
	return area, nil
}
