package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"shoptrack/pkg/model"
)

type CustomerClient struct {
	httpClient *HttpClient
}

func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *CustomerClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/customers", body)
}

func (c *CustomerClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/customers?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *CustomerClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/customers/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *CustomerClient) GetByPhone(phone string) (*Response, error) {
	path := "/api/v1/customers/phone/" + url.PathEscape(phone)
	return c.httpClient.GET(path)
}

func (c *CustomerClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/customers/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *CustomerClient) Delete(id string) (*Response, error) {
	path := "/api/v1/customers/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *CustomerClient) AddVehicle(customerID string, body any) (*Response, error) {
	path := "/api/v1/customers/id/" + url.PathEscape(customerID) + "/vehicles"
	return c.httpClient.POST(path, body)
}

func (c *CustomerClient) GetVehicles(customerID string) (*Response, error) {
	path := "/api/v1/customers/id/" + url.PathEscape(customerID) + "/vehicles"
	return c.httpClient.GET(path)
}

func (c *CustomerClient) DecodeCustomer(resp *Response) (*model.Customer, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode customer wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var customer model.Customer
	if err := json.Unmarshal(wrapper.Data, &customer); err != nil {
		return nil, fmt.Errorf("could not decode customer json:\n%+v\n%s", resp.ToString(), err)
	}

	return &customer, nil
}

func (c *CustomerClient) DecodeCustomers(resp *Response) ([]*model.Customer, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode customers wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var customers []*model.Customer
	if len(wrapper.Data) > 0 {
		if err := json.Unmarshal(wrapper.Data, &customers); err != nil {
			return nil, fmt.Errorf("could not decode customers json:\n%+v\n%s", resp.ToString(), err)
		}
	}

	return customers, nil
}

func (c *CustomerClient) DecodeVehicles(resp *Response) ([]*model.Vehicle, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode vehicles wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var vehicles []*model.Vehicle
	if len(wrapper.Data) > 0 {
		if err := json.Unmarshal(wrapper.Data, &vehicles); err != nil {
			return nil, fmt.Errorf("could not decode vehicles json:\n%+v\n%s", resp.ToString(), err)
		}
	}

	return vehicles, nil
}
