package store

import "ventas/internal/domain"

var Companies = Table[domain.Company]{
	Name:    "Companies",
	Entity:  "company",
	Columns: []string{"name", "address", "phoneNumber"},
	Scan: func(s Scanner, c *domain.Company) error {
		return s.Scan(&c.ID, &c.Name, &c.Address, &c.PhoneNumber)
	},
	Values: func(c *domain.Company) []any {
		return []any{c.Name, c.Address, c.PhoneNumber}
	},
	ID:    func(c *domain.Company) int64 { return c.ID },
	SetID: func(c *domain.Company, id int64) { c.ID = id },
}

var Employees = Table[domain.Employee]{
	Name:    "Employees",
	Entity:  "employee",
	Columns: []string{"name", "position", "salary", "companyId"},
	Scan: func(s Scanner, e *domain.Employee) error {
		return s.Scan(&e.ID, &e.Name, &e.Position, &e.Salary, &e.CompanyID)
	},
	Values: func(e *domain.Employee) []any {
		return []any{e.Name, e.Position, e.Salary, e.CompanyID}
	},
	ID:    func(e *domain.Employee) int64 { return e.ID },
	SetID: func(e *domain.Employee, id int64) { e.ID = id },
}

var Articles = Table[domain.Article]{
	Name:    "Articles",
	Entity:  "article",
	Columns: []string{"name", "value", "companyId"},
	Scan: func(s Scanner, a *domain.Article) error {
		return s.Scan(&a.ID, &a.Name, &a.Value, &a.CompanyID)
	},
	Values: func(a *domain.Article) []any {
		return []any{a.Name, a.Value, a.CompanyID}
	},
	ID:    func(a *domain.Article) int64 { return a.ID },
	SetID: func(a *domain.Article, id int64) { a.ID = id },
}

var Orders = Table[domain.Order]{
	Name:    "Orders",
	Entity:  "order",
	Columns: []string{"name", "totalValue", "status", "employeeId"},
	Scan: func(s Scanner, o *domain.Order) error {
		return s.Scan(&o.ID, &o.Name, &o.TotalValue, &o.Status, &o.EmployeeID)
	},
	Values: func(o *domain.Order) []any {
		return []any{o.Name, o.TotalValue, o.Status, o.EmployeeID}
	},
	ID:    func(o *domain.Order) int64 { return o.ID },
	SetID: func(o *domain.Order, id int64) { o.ID = id },
}

var OrderDetails = Table[domain.OrderDetail]{
	Name:    "OrderDetails",
	Entity:  "order detail",
	Columns: []string{"articleId", "orderId"},
	Scan: func(s Scanner, d *domain.OrderDetail) error {
		return s.Scan(&d.ID, &d.ArticleID, &d.OrderID)
	},
	Values: func(d *domain.OrderDetail) []any {
		return []any{d.ArticleID, d.OrderID}
	},
	ID:    func(d *domain.OrderDetail) int64 { return d.ID },
	SetID: func(d *domain.OrderDetail, id int64) { d.ID = id },
}

var Invoices = Table[domain.Invoice]{
	Name:    "Invoices",
	Entity:  "invoice",
	Columns: []string{"status", "deliveryDate", "orderId"},
	Scan: func(s Scanner, i *domain.Invoice) error {
		return s.Scan(&i.ID, &i.Status, &i.DeliveryDate, &i.OrderID)
	},
	Values: func(i *domain.Invoice) []any {
		return []any{i.Status, i.DeliveryDate, i.OrderID}
	},
	ID:    func(i *domain.Invoice) int64 { return i.ID },
	SetID: func(i *domain.Invoice, id int64) { i.ID = id },
}
