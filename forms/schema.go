// Package forms 表单结构、字段显示规则和输入校验
package forms

import (
	"fmt"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"go-tania/models"
)

// 字段类型
const (
	KindText     = "text"
	KindNumber   = "number"
	KindSelect   = "select"
	KindFile     = "file"
	KindTextarea = "textarea"
	KindDate     = "date"
	KindPassword = "password"
)

// Option 下拉选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field 表单字段。ShowIf 为 expr 表达式，当前表单值以 form 暴露，
// 例如 form.type == "BUCKET"
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
	ShowIf   string   `json:"show_if,omitempty"`
}

// Schema 一个表单
type Schema struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

var programs sync.Map

func compile(expression string) (*vm.Program, error) {
	if cached, ok := programs.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile show_if %q: %w", expression, err)
	}
	programs.Store(expression, program)
	return program, nil
}

// Visible 按表单值过滤出应显示的字段
func (s Schema) Visible(values map[string]any) ([]Field, error) {
	form := make(map[string]any, len(values))
	for k, v := range values {
		form[k] = v
	}
	env := map[string]any{"form": form}
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.ShowIf == "" {
			out = append(out, f)
			continue
		}
		program, err := compile(f.ShowIf)
		if err != nil {
			return nil, err
		}
		res, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluate show_if of %s: %w", f.Name, err)
		}
		if shown, _ := res.(bool); shown {
			out = append(out, f)
		}
	}
	return out, nil
}

// Field 按名称查找字段
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func options(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

var schemas = map[string]Schema{
	"login": {
		Name:  "login",
		Title: "Sign In",
		Fields: []Field{
			{Name: "username", Label: "Username", Kind: KindText, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
		},
	},
	"password": {
		Name:  "password",
		Title: "Change Password",
		Fields: []Field{
			{Name: "old_password", Label: "Old Password", Kind: KindPassword, Required: true},
			{Name: "new_password", Label: "New Password", Kind: KindPassword, Required: true},
			{Name: "confirm_password", Label: "Confirm Password", Kind: KindPassword, Required: true},
		},
	},
	"farm": {
		Name:  "farm",
		Title: "Create Farm",
		Fields: []Field{
			{Name: "name", Label: "Farm Name", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "type", Label: "Farm Type", Kind: KindSelect, Required: true},
			{Name: "latitude", Label: "Latitude", Kind: KindText, Required: true},
			{Name: "longitude", Label: "Longitude", Kind: KindText, Required: true},
			{Name: "country", Label: "Country", Kind: KindSelect, Required: true},
			{Name: "city", Label: "City", Kind: KindSelect, Required: true, ShowIf: `form.country != nil && form.country != ""`},
		},
	},
	"reservoir": {
		Name:  "reservoir",
		Title: "Create Reservoir",
		Fields: []Field{
			{Name: "name", Label: "Reservoir Name", Kind: KindText, Required: true},
			{Name: "type", Label: "Source", Kind: KindSelect, Required: true, Options: options(models.ReservoirTypeBucket, models.ReservoirTypeTap)},
			{Name: "capacity", Label: "Capacity", Kind: KindNumber, Required: true, ShowIf: `form.type == "BUCKET"`},
		},
	},
	"area": {
		Name:  "area",
		Title: "Create Area",
		Fields: []Field{
			{Name: "name", Label: "Area Name", Kind: KindText, Required: true},
			{Name: "type", Label: "Type", Kind: KindSelect, Required: true, Options: options(models.AreaTypeSeeding, models.AreaTypeGrowing)},
			{Name: "location", Label: "Locations", Kind: KindSelect, Required: true, Options: options(models.AreaLocationOutdoor, models.AreaLocationIndoor)},
			{Name: "size", Label: "Size", Kind: KindNumber, Required: true},
			{Name: "size_unit", Label: "Size Unit", Kind: KindSelect, Required: true, Options: options(models.SizeUnitHectare, models.SizeUnitSquareMeter)},
			{Name: "reservoir_id", Label: "Select Reservoir", Kind: KindSelect, Required: true},
			{Name: "photo", Label: "Photo", Kind: KindFile},
		},
	},
	"crop": {
		Name:  "crop",
		Title: "Add New Batch",
		Fields: []Field{
			{Name: "initial_area", Label: "Area", Kind: KindSelect, Required: true},
			{Name: "crop_type", Label: "Crop Type", Kind: KindSelect, Required: true, Options: options(models.CropTypeSeeding, models.CropTypeGrowing)},
			{Name: "plant_type", Label: "Plant Type", Kind: KindSelect, Required: true},
			{Name: "name", Label: "Variety", Kind: KindSelect, Required: true, ShowIf: `form.plant_type != nil && form.plant_type != ""`},
			{Name: "container_quantity", Label: "Container Quantity", Kind: KindNumber, Required: true},
			{Name: "container_type", Label: "Container Type", Kind: KindSelect, Required: true, Options: options(models.ContainerTray, models.ContainerPot)},
		},
	},
	"material": {
		Name:  "material",
		Title: "Add Material",
		Fields: []Field{
			{Name: "type", Label: "Material Type", Kind: KindSelect, Required: true, Options: options(models.MaterialTypes()...)},
			{Name: "type_detail", Label: "Plant Type", Kind: KindSelect, Required: true, ShowIf: `form.type in ["SEED", "PLANT"]`},
			{Name: "type_detail", Label: "Chemical Type", Kind: KindSelect, Required: true, Options: options(models.ChemicalTypeFertilizer, models.ChemicalTypePesticide), ShowIf: `form.type == "AGROCHEMICAL"`},
			{Name: "type_detail", Label: "Container Type", Kind: KindSelect, Required: true, Options: options(models.ContainerTray, models.ContainerPot), ShowIf: `form.type == "SEEDING_CONTAINER"`},
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "quantity", Label: "Quantity", Kind: KindNumber, Required: true},
			{Name: "quantity_unit", Label: "Unit", Kind: KindSelect, Required: true},
			{Name: "price_per_unit", Label: "Price per Unit", Kind: KindNumber},
		},
	},
	"task": {
		Name:  "task",
		Title: "Create Task",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "due_date", Label: "Due Date", Kind: KindDate},
			{Name: "priority", Label: "Is this task urgent?", Kind: KindSelect, Required: true, Options: options(models.TaskPriorityNormal, models.TaskPriorityUrgent)},
			{Name: "category", Label: "Category", Kind: KindSelect, Required: true},
			{Name: "domain", Label: "Domain", Kind: KindSelect, Required: true, Options: options(
				models.TaskDomainArea, models.TaskDomainCrop, models.TaskDomainFinance,
				models.TaskDomainGeneral, models.TaskDomainInventory, models.TaskDomainReservoir,
			)},
			{Name: "asset_id", Label: "Asset", Kind: KindSelect, Required: true, ShowIf: `form.domain != "GENERAL"`},
		},
	},
	"note": {
		Name:  "note",
		Title: "Add Note",
		Fields: []Field{
			{Name: "content", Label: "Note", Kind: KindTextarea, Required: true},
		},
	},
}

// Lookup 按名称取表单
func Lookup(name string) (Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// Names 全部表单名，按字母排序
func Names() []string {
	out := make([]string, 0, len(schemas))
	for name := range schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
