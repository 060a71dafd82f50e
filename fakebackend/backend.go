// Package fakebackend 内存版的后端 REST 接口，供测试和本地演示使用
package fakebackend

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"go-tania/models"
)

// Backend 内存后端
type Backend struct {
	mu         sync.Mutex
	seq        int
	Token      string
	Username   string
	Password   string
	ExpiresIn  int // 登录返回的 token 有效秒数，0 表示不过期
	farms      []models.Farm
	reservoirs []models.Reservoir
	areas      []models.Area
	crops      []models.Crop
	materials  []models.Material
	tasks      []models.Task
	photos     map[string][]byte
	requests   []string
}

// New 创建后端，demo/password 可登录
func New() *Backend {
	return &Backend{
		Token:    "token-demo",
		Username: "demo",
		Password: "password",
		photos:   make(map[string][]byte),
	}
}

// Start 启动 httptest 服务
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b.Router())
}

func (b *Backend) nextUID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", prefix, b.seq)
}

func fieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"field_name":    field,
		"error_code":    "1",
		"error_message": message,
	})
}

func (b *Backend) auth(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+b.Token {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func (b *Backend) record(c *gin.Context) {
	b.mu.Lock()
	b.requests = append(b.requests, c.Request.Method+" "+c.Request.URL.Path)
	b.mu.Unlock()
	c.Next()
}

// Calls 统计某个 "METHOD /path" 收到的请求次数
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == route {
			n++
		}
	}
	return n
}

// Router 后端路由
func (b *Backend) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(b.record)

	api := r.Group("/api")
	api.POST("/authorize", b.authorize)
	api.GET("/locations/countries", b.countries)
	api.GET("/locations/cities", b.cities)

	p := api.Group("/")
	p.Use(b.auth)
	{
		p.GET("/farms", b.listFarms)
		p.POST("/farms", b.createFarm)
		p.PUT("/farms/:id", b.updateFarm)
		p.GET("/farms/types", b.farmTypes)
		p.GET("/farms/:id/reservoirs", b.listReservoirs)
		p.POST("/farms/:id/reservoirs", b.createReservoir)
		p.PUT("/farms/reservoirs/:id", b.updateReservoir)
		p.GET("/farms/:id/areas", b.listAreas)
		p.POST("/farms/:id/areas", b.createArea)
		p.GET("/farms/:id/crops", b.listCrops)
		p.GET("/farms/:id/crops/information", b.cropInformation)
		p.POST("/farms/areas/:id/crops", b.createCrop)
		p.GET("/farms/inventories/materials", b.listMaterials)
		p.POST("/farms/inventories/materials/:type", b.createMaterial)
		p.GET("/tasks", b.listTasks)
		p.POST("/tasks", b.createTask)
		p.PUT("/tasks/:id/complete", b.completeTask)
		p.POST("/user/change_password", b.changePassword)
	}
	return r
}

func (b *Backend) authorize(c *gin.Context) {
	b.mu.Lock()
	ok := c.PostForm("username") == b.Username && c.PostForm("password") == b.Password
	b.mu.Unlock()
	if !ok {
		fieldError(c, "username", "invalid username or password")
		return
	}
	redirect := c.PostForm("redirect_uri")
	if redirect == "" {
		fieldError(c, "redirect_uri", "redirect_uri is required")
		return
	}
	c.Header("Authorization", "Bearer "+b.Token)
	c.Redirect(http.StatusFound, redirect+"?access_token="+b.Token+"&state="+c.PostForm("state")+"&expires_in="+strconv.Itoa(b.ExpiresIn))
}

func (b *Backend) countries(c *gin.Context) {
	c.JSON(http.StatusOK, []models.Country{{ID: "ID", Name: "Indonesia"}, {ID: "NL", Name: "Netherlands"}})
}

func (b *Backend) cities(c *gin.Context) {
	if c.Query("country_id") != "ID" {
		c.JSON(http.StatusOK, []models.City{})
		return
	}
	c.JSON(http.StatusOK, []models.City{{ID: "JK", Name: "Jakarta"}})
}

func (b *Backend) listFarms(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": append([]models.Farm{}, b.farms...)})
}

func (b *Backend) createFarm(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		fieldError(c, "name", "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	farm := models.Farm{
		UID:         b.nextUID("farm"),
		Name:        name,
		Description: c.PostForm("description"),
		Type:        c.PostForm("farm_type"),
		Latitude:    c.PostForm("latitude"),
		Longitude:   c.PostForm("longitude"),
		Country:     c.PostForm("country"),
		City:        c.PostForm("city"),
	}
	b.farms = append(b.farms, farm)
	c.JSON(http.StatusOK, gin.H{"data": farm})
}

func (b *Backend) updateFarm(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.farms {
		if b.farms[i].UID == c.Param("id") {
			b.farms[i].Name = c.PostForm("name")
			b.farms[i].Description = c.PostForm("description")
			b.farms[i].Type = c.PostForm("farm_type")
			b.farms[i].Latitude = c.PostForm("latitude")
			b.farms[i].Longitude = c.PostForm("longitude")
			b.farms[i].Country = c.PostForm("country")
			b.farms[i].City = c.PostForm("city")
			c.JSON(http.StatusOK, gin.H{"data": b.farms[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error_message": "farm not found"})
}

func (b *Backend) farmTypes(c *gin.Context) {
	c.JSON(http.StatusOK, []models.FarmType{{Code: "ORGANIC", Name: "Organic"}, {Code: "HYDROPONIC", Name: "Hydroponic"}})
}

func (b *Backend) listReservoirs(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Reservoir{}
	for _, r := range b.reservoirs {
		if r.FarmID == c.Param("id") {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (b *Backend) createReservoir(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		fieldError(c, "name", "name is required")
		return
	}
	typ := c.PostForm("type")
	var capacity float64
	if typ == models.ReservoirTypeBucket {
		v, err := strconv.ParseFloat(c.PostForm("capacity"), 64)
		if err != nil || v <= 0 {
			fieldError(c, "capacity", "capacity is required")
			return
		}
		capacity = v
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r := models.Reservoir{UID: b.nextUID("reservoir"), Name: name, Type: typ, Capacity: capacity, FarmID: c.Param("id")}
	b.reservoirs = append(b.reservoirs, r)
	c.JSON(http.StatusOK, gin.H{"data": r})
}

func (b *Backend) updateReservoir(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.reservoirs {
		if b.reservoirs[i].UID == c.Param("id") {
			b.reservoirs[i].Name = c.PostForm("name")
			b.reservoirs[i].Type = c.PostForm("type")
			b.reservoirs[i].Capacity, _ = strconv.ParseFloat(c.PostForm("capacity"), 64)
			c.JSON(http.StatusOK, gin.H{"data": b.reservoirs[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error_message": "reservoir not found"})
}

// Farms 后端保存的全部农场
func (b *Backend) Farms() []models.Farm {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Farm{}, b.farms...)
}

// Reservoirs 后端保存的全部水源
func (b *Backend) Reservoirs() []models.Reservoir {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Reservoir{}, b.reservoirs...)
}

func (b *Backend) listAreas(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Area{}
	for _, a := range b.areas {
		if a.FarmID == c.Param("id") {
			out = append(out, a)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (b *Backend) createArea(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fieldError(c, "content_type", "multipart/form-data required")
		return
	}
	name := c.PostForm("name")
	if name == "" {
		fieldError(c, "name", "name is required")
		return
	}
	size, _ := strconv.ParseFloat(c.PostForm("size"), 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	area := models.Area{
		UID:         b.nextUID("area"),
		Name:        name,
		Size:        size,
		SizeUnit:    c.PostForm("size_unit"),
		Type:        c.PostForm("type"),
		Location:    c.PostForm("location"),
		ReservoirID: c.PostForm("reservoir_id"),
		FarmID:      c.Param("id"),
	}
	if fh, err := c.FormFile("photo"); err == nil {
		if f, err := fh.Open(); err == nil {
			data, _ := io.ReadAll(f)
			f.Close()
			b.photos[area.UID] = data
		}
	}
	b.areas = append(b.areas, area)
	c.JSON(http.StatusOK, gin.H{"data": area})
}

// Photo 返回区域上传的图片
func (b *Backend) Photo(areaID string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.photos[areaID]
}

func paginate[T any](items []T, page int) []T {
	start := (page - 1) * 10
	if start >= len(items) {
		return []T{}
	}
	end := start + 10
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[start:end]...)
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (b *Backend) listCrops(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page := queryPage(c)
	c.JSON(http.StatusOK, gin.H{"data": paginate(b.crops, page), "total_rows": len(b.crops), "page": page})
}

func (b *Backend) cropInformation(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	varieties := map[string]bool{}
	for _, cr := range b.crops {
		varieties[cr.Variety] = true
	}
	c.JSON(http.StatusOK, gin.H{"data": models.CropInformation{TotalPlantVariety: len(varieties)}})
}

func (b *Backend) createCrop(c *gin.Context) {
	qty, err := strconv.Atoi(c.PostForm("container_quantity"))
	if err != nil || qty <= 0 {
		fieldError(c, "container_quantity", "quantity must be positive")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	crop := models.Crop{
		UID:           b.nextUID("crop"),
		AreaID:        c.Param("id"),
		CropType:      c.PostForm("crop_type"),
		PlantType:     c.PostForm("plant_type"),
		Variety:       c.PostForm("name"),
		Quantity:      qty,
		ContainerType: c.PostForm("container_type"),
		Status:        models.CropStatusActive,
	}
	b.crops = append([]models.Crop{crop}, b.crops...)
	c.JSON(http.StatusOK, gin.H{"data": crop})
}

func (b *Backend) listMaterials(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page := queryPage(c)
	c.JSON(http.StatusOK, gin.H{"data": paginate(b.materials, page), "total": len(b.materials), "page": page})
}

func (b *Backend) createMaterial(c *gin.Context) {
	typ := strings.ToUpper(c.Param("type"))
	name := c.PostForm("name")
	if name == "" {
		fieldError(c, "name", "name is required")
		return
	}
	qty, _ := strconv.ParseFloat(c.PostForm("quantity"), 64)
	price, _ := strconv.ParseFloat(c.PostForm("price_per_unit"), 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	m := models.Material{
		UID:          b.nextUID("material"),
		Type:         typ,
		Name:         name,
		Quantity:     qty,
		QuantityUnit: c.PostForm("quantity_unit"),
		Price:        price,
	}
	b.materials = append([]models.Material{m}, b.materials...)
	c.JSON(http.StatusOK, gin.H{"data": m})
}

func (b *Backend) listTasks(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page := queryPage(c)
	c.JSON(http.StatusOK, gin.H{"data": paginate(b.tasks, page), "total_rows": len(b.tasks), "page": page})
}

func (b *Backend) createTask(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		fieldError(c, "title", "title is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t := models.Task{
		UID:         b.nextUID("task"),
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Priority:    c.PostForm("priority"),
		DueDate:     c.PostForm("due_date"),
		Domain:      c.PostForm("domain"),
		AssetID:     c.PostForm("asset_id"),
		Status:      models.TaskStatusCreated,
	}
	b.tasks = append([]models.Task{t}, b.tasks...)
	c.JSON(http.StatusOK, gin.H{"data": t})
}

func (b *Backend) completeTask(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].UID == c.Param("id") {
			b.tasks[i].Status = models.TaskStatusCompleted
			c.JSON(http.StatusOK, gin.H{"data": b.tasks[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error_message": "task not found"})
}

func (b *Backend) changePassword(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.PostForm("old_password") != b.Password {
		fieldError(c, "old_password", "old password is wrong")
		return
	}
	if c.PostForm("new_password") != c.PostForm("confirm_password") {
		fieldError(c, "confirm_password", "password confirmation does not match")
		return
	}
	b.Password = c.PostForm("new_password")
	c.JSON(http.StatusOK, gin.H{"data": true})
}

// SeedFarm 直接写入一个农场
func (b *Backend) SeedFarm(name string) models.Farm {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := models.Farm{UID: b.nextUID("farm"), Name: name, Type: "ORGANIC"}
	b.farms = append(b.farms, f)
	return f
}

// SeedTasks 直接写入 n 个任务
func (b *Backend) SeedTasks(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < n; i++ {
		b.tasks = append(b.tasks, models.Task{UID: b.nextUID("task"), Title: fmt.Sprintf("Task %d", i+1), Status: models.TaskStatusCreated})
	}
}
