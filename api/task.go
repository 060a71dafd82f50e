package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go-tania/client"
	"go-tania/models"
)

// 任务列表的状态筛选
const (
	TaskFilterCompleted = "COMPLETED"
	TaskFilterThisWeek  = "THISWEEK"
	TaskFilterThisMonth = "THISMONTH"
	TaskFilterOverdue   = "OVERDUE"
	TaskFilterToday     = "TODAY"
)

const dateLayout = "2006-01-02"

func taskForm(t models.Task) client.Form {
	return client.Form{
		"title":       {t.Title},
		"description": {t.Description},
		"priority":    {t.Priority},
		"category":    {t.Category},
		"due_date":    {t.DueDate},
		"domain":      {t.Domain},
		"asset_id":    {t.AssetID},
	}
}

// CreateTask 创建任务
func (a *API) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	return sendData[models.Task](ctx, a.c, http.MethodPost, "tasks", taskForm(t))
}

// UpdateTask 更新任务
func (a *API) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	return sendData[models.Task](ctx, a.c, http.MethodPut, "tasks/"+t.UID, taskForm(t))
}

// FetchTasks 分页获取任务
func (a *API) FetchTasks(ctx context.Context, page int) (Page[models.Task], error) {
	return getPage[models.Task](ctx, a.c, withQuery("tasks", pageQuery(page)))
}

// FindTasksByDomainAndAssetID 按领域和资产查询任务
func (a *API) FindTasksByDomainAndAssetID(ctx context.Context, page int, domain, assetID string) (Page[models.Task], error) {
	q := pageQuery(page)
	q.Set("domain", domain)
	q.Set("asset_id", assetID)
	return getPage[models.Task](ctx, a.c, withQuery("tasks/search", q))
}

// TaskFilter 任务筛选条件
type TaskFilter struct {
	Category string
	Priority string
	Status   string
}

// FindTasksByCategoryAndPriorityAndStatus 按分类、优先级、状态查询任务
func (a *API) FindTasksByCategoryAndPriorityAndStatus(ctx context.Context, page int, f TaskFilter) (Page[models.Task], error) {
	q := pageQuery(page)
	q.Set("category", f.Category)
	q.Set("priority", f.Priority)
	for k, v := range TaskStatusQuery(f.Status, time.Now()) {
		q[k] = v
	}
	return getPage[models.Task](ctx, a.c, withQuery("tasks/search", q))
}

// SetTaskDue 标记任务到期
func (a *API) SetTaskDue(ctx context.Context, taskID string) (models.Task, error) {
	return sendData[models.Task](ctx, a.c, http.MethodPut, "tasks/"+taskID+"/due", client.Form{})
}

// SetTaskCompleted 标记任务完成
func (a *API) SetTaskCompleted(ctx context.Context, taskID string) (models.Task, error) {
	return sendData[models.Task](ctx, a.c, http.MethodPut, "tasks/"+taskID+"/complete", client.Form{})
}

// TaskStatusQuery 把状态筛选转换为查询参数，一周从周日开始
func TaskStatusQuery(status string, now time.Time) url.Values {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch status {
	case TaskFilterCompleted:
		return url.Values{"status": {models.TaskStatusCompleted}}
	case TaskFilterThisWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		end := start.AddDate(0, 0, 6)
		return url.Values{"due_start": {start.Format(dateLayout)}, "due_end": {end.Format(dateLayout)}}
	case TaskFilterThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		return url.Values{"due_start": {start.Format(dateLayout)}, "due_end": {end.Format(dateLayout)}}
	case TaskFilterOverdue:
		return url.Values{"is_due": {"true"}}
	case TaskFilterToday:
		return url.Values{"due_date": {today.Format(dateLayout)}}
	default:
		return url.Values{"status": {models.TaskStatusCreated}}
	}
}
