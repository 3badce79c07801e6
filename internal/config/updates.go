package config

// Clone returns a deep copy of the configuration.
func (p ProjectConfiguration) Clone() ProjectConfiguration {
	c := p
	c.InvestmentItems = cloneSlice(p.InvestmentItems)
	c.DepreciableAssets = cloneSlice(p.DepreciableAssets)
	c.Loans = cloneSlice(p.Loans)
	c.Payroll.Positions = cloneSlice(p.Payroll.Positions)

	if p.RecurringRevenues != nil {
		c.RecurringRevenues = make([]RecurringRevenue, len(p.RecurringRevenues))
		for i, revenue := range p.RecurringRevenues {
			c.RecurringRevenues[i] = revenue.Clone()
		}
	}
	if p.RecurringExpenses != nil {
		c.RecurringExpenses = make([]RecurringExpense, len(p.RecurringExpenses))
		for i, expense := range p.RecurringExpenses {
			c.RecurringExpenses[i] = expense.Clone()
		}
	}
	if p.Advanced.Products != nil {
		c.Advanced.Products = make([]Product, len(p.Advanced.Products))
		for i, product := range p.Advanced.Products {
			c.Advanced.Products[i] = product.Clone()
		}
	}
	return c
}

// Clone returns a copy that shares no slices with r.
func (r RecurringRevenue) Clone() RecurringRevenue {
	r.AnnualGrowthRates = cloneSlice(r.AnnualGrowthRates)
	r.MonthlyOverrides = cloneSlice(r.MonthlyOverrides)
	return r
}

// Clone returns a copy that shares no slices with e.
func (e RecurringExpense) Clone() RecurringExpense {
	e.AnnualGrowthRates = cloneSlice(e.AnnualGrowthRates)
	e.MonthlyOverrides = cloneSlice(e.MonthlyOverrides)
	return e
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.AnnualSalesGrowthRates = cloneSlice(p.AnnualSalesGrowthRates)
	p.AnnualVariableCostGrowthRates = cloneSlice(p.AnnualVariableCostGrowthRates)
	p.AnnualPriceIncreaseRates = cloneSlice(p.AnnualPriceIncreaseRates)
	p.BOMItems = cloneSlice(p.BOMItems)
	return p
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// upsert replaces the element with the same ID or appends it.
func upsert[T any](s []T, item T, id func(T) string) []T {
	for i, existing := range s {
		if id(existing) == id(item) {
			s[i] = item
			return s
		}
	}
	return append(s, item)
}

// WithLoan returns a copy with loan added or replaced by ID.
func (p ProjectConfiguration) WithLoan(loan Loan) ProjectConfiguration {
	c := p.Clone()
	c.Loans = upsert(c.Loans, loan, func(l Loan) string { return l.ID })
	return c
}

// WithRecurringRevenue returns a copy with revenue added or replaced by ID.
func (p ProjectConfiguration) WithRecurringRevenue(revenue RecurringRevenue) ProjectConfiguration {
	c := p.Clone()
	c.RecurringRevenues = upsert(c.RecurringRevenues, revenue.Clone(), func(r RecurringRevenue) string { return r.ID })
	return c
}

// WithRecurringExpense returns a copy with expense added or replaced by ID.
func (p ProjectConfiguration) WithRecurringExpense(expense RecurringExpense) ProjectConfiguration {
	c := p.Clone()
	c.RecurringExpenses = upsert(c.RecurringExpenses, expense.Clone(), func(e RecurringExpense) string { return e.ID })
	return c
}

// WithProduct returns a copy with product added or replaced by ID.
func (p ProjectConfiguration) WithProduct(product Product) ProjectConfiguration {
	c := p.Clone()
	c.Advanced.Products = upsert(c.Advanced.Products, product.Clone(), func(pr Product) string { return pr.ID })
	return c
}
