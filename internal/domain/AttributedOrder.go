package domain

import "time"

// AttributedOrder é um pedido confirmado com as tags UTM capturadas no checkout
type AttributedOrder struct {
	OrderID        string    `json:"order_id"`
	EventID        string    `json:"event_id"`
	UTMCampaign    string    `json:"utm_campaign"`
	UTMSource      string    `json:"utm_source"`
	Total          float64   `json:"total"`
	TicketQuantity int64     `json:"ticket_quantity"`
	CustomerID     string    `json:"customer_id"`
	NewCustomer    bool      `json:"new_customer"`
	OrderDate      time.Time `json:"order_date"`
}

// AttributedOrderFilters seleciona os pedidos atribuídos a uma campanha
type AttributedOrderFilters struct {
	EventID     string
	UTMCampaign string
	UTMSource   string
	StartDate   *time.Time
}

// AttributedRevenue é a receita atribuída de um dia
type AttributedRevenue struct {
	Date         time.Time
	Revenue      float64
	TicketsSold  int64
	NewCustomers int64
}

// GroupAttributedOrders agrupa os pedidos por data, contando clientes novos distintos
func GroupAttributedOrders(orders []AttributedOrder) map[time.Time]*AttributedRevenue {
	byDate := make(map[time.Time]*AttributedRevenue)
	customers := make(map[time.Time]map[string]struct{})

	for _, order := range orders {
		day := TruncateDay(order.OrderDate)
		rev, ok := byDate[day]
		if !ok {
			rev = &AttributedRevenue{Date: day}
			byDate[day] = rev
			customers[day] = make(map[string]struct{})
		}

		rev.Revenue += order.Total
		rev.TicketsSold += order.TicketQuantity

		if order.NewCustomer && order.CustomerID != "" {
			if _, seen := customers[day][order.CustomerID]; !seen {
				customers[day][order.CustomerID] = struct{}{}
				rev.NewCustomers++
			}
		}
	}

	return byDate
}
