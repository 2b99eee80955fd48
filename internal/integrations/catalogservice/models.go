package catalogservice

// Service модель услуги (скан/лабораторный тест) из CatalogService
type Service struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"` // например "mri", "ct", "blood-test"
	BasePrice           float64  `json:"base_price"`
	DiscountedPrice     *float64 `json:"discounted_price,omitempty"`
	UrgentPrice         *float64 `json:"urgent_price,omitempty"`
	HomeServiceEligible bool     `json:"home_service_eligible"`
}

// EffectiveBasePrice возвращает цену со скидкой, если она задана, иначе базовую
func (s *Service) EffectiveBasePrice() float64 {
	if s.DiscountedPrice != nil {
		return *s.DiscountedPrice
	}
	return s.BasePrice
}

// Center модель диагностического центра из CatalogService
type Center struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	ServicesOffered []int64 `json:"services_offered"`
}

// OffersService проверяет, что центр оказывает услугу
func (c *Center) OffersService(serviceID int64) bool {
	for _, id := range c.ServicesOffered {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
