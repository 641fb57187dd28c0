package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"shoptrack/pkg/model"
)

type TechnicianClient struct {
	httpClient *HttpClient
}

func NewTechnicianClient(baseURL string) *TechnicianClient {
	return &TechnicianClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *TechnicianClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/technicians", body)
}

func (c *TechnicianClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/technicians?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *TechnicianClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/technicians/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *TechnicianClient) GetByShop(shopID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf(
		"/api/v1/technicians/shop/%s?limit=%d&offset=%d",
		url.PathEscape(shopID),
		limit,
		offset,
	)
	return c.httpClient.GET(path)
}

func (c *TechnicianClient) Search(shopID string, specialties []string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("shop_id", shopID)
	q.Set("specialties", strings.Join(specialties, ","))
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/technicians/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *TechnicianClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/technicians/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *TechnicianClient) Delete(id string) (*Response, error) {
	path := "/api/v1/technicians/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *TechnicianClient) DecodeTechnician(resp *Response) (*model.Technician, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode technician wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var tech model.Technician
	if err := json.Unmarshal(wrapper.Data, &tech); err != nil {
		return nil, fmt.Errorf("could not decode technician json:\n%+v\n%s", resp.ToString(), err)
	}

	return &tech, nil
}

func (c *TechnicianClient) DecodeTechnicians(resp *Response) ([]*model.Technician, int64, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, 0, fmt.Errorf("could not decode technicians wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var techs []*model.Technician
	if len(wrapper.Data) > 0 {
		if err := json.Unmarshal(wrapper.Data, &techs); err != nil {
			return nil, 0, fmt.Errorf("could not decode technicians json:\n%+v\n%s", resp.ToString(), err)
		}
	}

	return techs, wrapper.TotalCount, nil
}
