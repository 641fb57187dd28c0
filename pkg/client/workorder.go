package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"shoptrack/pkg/model"
)

type WorkOrderClient struct {
	httpClient *HttpClient
}

func NewWorkOrderClient(baseURL string) *WorkOrderClient {
	return &WorkOrderClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *WorkOrderClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/work-orders", body)
}

func (c *WorkOrderClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/work-orders?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *WorkOrderClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/work-orders/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *WorkOrderClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/work-orders/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *WorkOrderClient) Delete(id string) (*Response, error) {
	path := "/api/v1/work-orders/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *WorkOrderClient) Search(shopID, technicianID, startTime, endTime string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("shop_id", shopID)
	if technicianID != "" {
		q.Set("technician_id", technicianID)
	}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/work-orders/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *WorkOrderClient) Assign(id string, assignment *model.Assignment) (*Response, error) {
	path := "/api/v1/work-orders/id/" + url.PathEscape(id) + "/assign"
	return c.httpClient.POST(path, assignment)
}

func (c *WorkOrderClient) UpdateStatus(id string, status string) (*Response, error) {
	path := "/api/v1/work-orders/id/" + url.PathEscape(id) + "/status"
	return c.httpClient.POST(path, map[string]string{"status": status})
}

func (c *WorkOrderClient) DecodeWorkOrder(resp *Response) (*model.WorkOrder, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode work order wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var order model.WorkOrder
	if err := json.Unmarshal(wrapper.Data, &order); err != nil {
		return nil, fmt.Errorf("could not decode work order json:\n%+v\n%s", resp.ToString(), err)
	}

	return &order, nil
}

func (c *WorkOrderClient) DecodeWorkOrders(resp *Response) ([]*model.WorkOrder, int64, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, 0, fmt.Errorf("could not decode work orders wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var orders []*model.WorkOrder
	if len(wrapper.Data) > 0 {
		if err := json.Unmarshal(wrapper.Data, &orders); err != nil {
			return nil, 0, fmt.Errorf("could not decode work orders json:\n%+v\n%s", resp.ToString(), err)
		}
	}

	return orders, wrapper.TotalCount, nil
}
