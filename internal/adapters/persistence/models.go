package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionModel represents the sessions table
type SessionModel struct {
	ID           string          `gorm:"column:id;primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	CurrentMonth int             `gorm:"column:current_month;not null"`
	CurrentYear  int             `gorm:"column:current_year;not null"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// MarketModel represents the markets table
type MarketModel struct {
	ID                   uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID            string          `gorm:"column:session_id;not null;uniqueIndex:idx_market_session_name"`
	Session              *SessionModel   `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name                 string          `gorm:"column:name;not null;uniqueIndex:idx_market_session_name"`
	Location             string          `gorm:"column:location"`
	MonthlyCapacity      int             `gorm:"column:monthly_volume_capacity;not null;default:200"`
	ElasticityFactor     float64         `gorm:"column:price_elasticity_factor;not null;default:1"`
	TransportCostHome    decimal.Decimal `gorm:"column:transport_cost_home;type:decimal(10,2);not null"`
	TransportCostForeign decimal.Decimal `gorm:"column:transport_cost_foreign;type:decimal(10,2);not null"`
	GreenCityFactor      float64         `gorm:"column:green_city_factor;not null;default:1"`
	MountainBikeFactor   float64         `gorm:"column:mountain_bike_factor;not null;default:1"`
	RoadBikeFactor       float64         `gorm:"column:road_bike_factor;not null;default:1"`
	CityBikeFactor       float64         `gorm:"column:city_bike_factor;not null;default:1"`
}

func (MarketModel) TableName() string {
	return "markets"
}

// BikeTypeModel represents the bike_types table
type BikeTypeModel struct {
	ID             uint          `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID      string        `gorm:"column:session_id;not null;uniqueIndex:idx_bike_type_session_name"`
	Session        *SessionModel `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name           string        `gorm:"column:name;not null;uniqueIndex:idx_bike_type_session_name"`
	SkilledHours   float64       `gorm:"column:skilled_worker_hours;not null"`
	UnskilledHours float64       `gorm:"column:unskilled_worker_hours;not null"`
}

func (BikeTypeModel) TableName() string {
	return "bike_types"
}

// MarketDemandModel represents the market_demands table
type MarketDemandModel struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID        string  `gorm:"column:session_id;not null;uniqueIndex:idx_market_demand_key"`
	MarketID         uint    `gorm:"column:market_id;not null;uniqueIndex:idx_market_demand_key"`
	BikeTypeID       uint    `gorm:"column:bike_type_id;not null;uniqueIndex:idx_market_demand_key"`
	DemandPercentage float64 `gorm:"column:demand_percentage;not null"`
}

func (MarketDemandModel) TableName() string {
	return "market_demands"
}

// MarketPriceSensitivityModel represents the market_price_sensitivities table
type MarketPriceSensitivityModel struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID    string  `gorm:"column:session_id;not null;uniqueIndex:idx_price_sensitivity_key"`
	MarketID     uint    `gorm:"column:market_id;not null;uniqueIndex:idx_price_sensitivity_key"`
	PriceSegment string  `gorm:"column:price_segment;not null;uniqueIndex:idx_price_sensitivity_key"`
	Percentage   float64 `gorm:"column:percentage;not null"`
}

func (MarketPriceSensitivityModel) TableName() string {
	return "market_price_sensitivities"
}

// BikePriceModel represents the bike_prices table
type BikePriceModel struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID    string          `gorm:"column:session_id;not null;uniqueIndex:idx_bike_price_key"`
	BikeTypeID   uint            `gorm:"column:bike_type_id;not null;uniqueIndex:idx_bike_price_key"`
	PriceSegment string          `gorm:"column:price_segment;not null;uniqueIndex:idx_bike_price_key"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
}

func (BikePriceModel) TableName() string {
	return "bike_prices"
}

// BusinessStrategyEffectModel represents the business_strategy_effects table
type BusinessStrategyEffectModel struct {
	SessionID      string    `gorm:"column:session_id;primaryKey"`
	DemandBoost    float64   `gorm:"column:demand_boost;not null;default:0"`
	DemandModifier float64   `gorm:"column:demand_modifier;not null;default:1"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (BusinessStrategyEffectModel) TableName() string {
	return "business_strategy_effects"
}

// CompetitorModel represents the competitors table
type CompetitorModel struct {
	ID                 uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID          string          `gorm:"column:session_id;not null;index"`
	Session            *SessionModel   `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name               string          `gorm:"column:name;not null"`
	Strategy           string          `gorm:"column:strategy;not null"`
	FinancialResources decimal.Decimal `gorm:"column:financial_resources;type:decimal(14,2);not null"`
	MarketPresence     float64         `gorm:"column:market_presence;not null"`
	Aggressiveness     float64         `gorm:"column:aggressiveness;not null"`
	Efficiency         float64         `gorm:"column:efficiency;not null"`
	TotalBikesProduced int             `gorm:"column:total_bikes_produced;not null;default:0"`
	TotalBikesSold     int             `gorm:"column:total_bikes_sold;not null;default:0"`
	TotalRevenue       decimal.Decimal `gorm:"column:total_revenue;type:decimal(14,2);not null"`
}

func (CompetitorModel) TableName() string {
	return "competitors"
}

// CompetitorProductionModel represents the competitor_productions table.
// One row is one lot; the (competitor, bike type, segment, month, year) key is unique.
type CompetitorProductionModel struct {
	ID                  uint             `gorm:"column:id;primaryKey;autoIncrement"`
	CompetitorID        uint             `gorm:"column:competitor_id;not null;uniqueIndex:idx_competitor_production_key"`
	Competitor          *CompetitorModel `gorm:"foreignKey:CompetitorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BikeTypeID          uint             `gorm:"column:bike_type_id;not null;uniqueIndex:idx_competitor_production_key"`
	PriceSegment        string           `gorm:"column:price_segment;not null;uniqueIndex:idx_competitor_production_key"`
	Month               int              `gorm:"column:month;not null;uniqueIndex:idx_competitor_production_key"`
	Year                int              `gorm:"column:year;not null;uniqueIndex:idx_competitor_production_key"`
	QuantityPlanned     int              `gorm:"column:quantity_planned;not null;default:0"`
	QuantityProduced    int              `gorm:"column:quantity_produced;not null;default:0"`
	QuantityInInventory int              `gorm:"column:quantity_in_inventory;not null;default:0"`
	CostPerUnit         decimal.Decimal  `gorm:"column:production_cost_per_unit;type:decimal(10,2);not null"`
	MonthsInInventory   int              `gorm:"column:months_in_inventory;not null;default:0"`
}

func (CompetitorProductionModel) TableName() string {
	return "competitor_productions"
}

// CompetitorSaleModel represents the competitor_sales table
type CompetitorSaleModel struct {
	ID              uint             `gorm:"column:id;primaryKey;autoIncrement"`
	CompetitorID    uint             `gorm:"column:competitor_id;not null;index"`
	Competitor      *CompetitorModel `gorm:"foreignKey:CompetitorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MarketID        uint             `gorm:"column:market_id;not null"`
	BikeTypeID      uint             `gorm:"column:bike_type_id;not null"`
	PriceSegment    string           `gorm:"column:price_segment;not null"`
	Month           int              `gorm:"column:month;not null"`
	Year            int              `gorm:"column:year;not null"`
	QuantityOffered int              `gorm:"column:quantity_offered;not null"`
	QuantitySold    int              `gorm:"column:quantity_sold;not null"`
	SalePrice       decimal.Decimal  `gorm:"column:sale_price;type:decimal(10,2);not null"`
	TotalRevenue    decimal.Decimal  `gorm:"column:total_revenue;type:decimal(14,2);not null"`
}

func (CompetitorSaleModel) TableName() string {
	return "competitor_sales"
}

// ProducedBikeModel represents the produced_bikes table
type ProducedBikeModel struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID         string          `gorm:"column:session_id;not null;index:idx_produced_bike_stock"`
	BikeTypeID        uint            `gorm:"column:bike_type_id;not null;index:idx_produced_bike_stock"`
	PriceSegment      string          `gorm:"column:price_segment;not null;index:idx_produced_bike_stock"`
	IsSold            bool            `gorm:"column:is_sold;not null;default:false;index:idx_produced_bike_stock"`
	ProductionMonth   int             `gorm:"column:production_month;not null"`
	ProductionYear    int             `gorm:"column:production_year;not null"`
	ProductionCost    decimal.Decimal `gorm:"column:production_cost;type:decimal(10,2);not null"`
	MonthsInInventory int             `gorm:"column:months_in_inventory;not null;default:0"`
	StorageCost       decimal.Decimal `gorm:"column:storage_cost;type:decimal(10,2);not null"`
}

func (ProducedBikeModel) TableName() string {
	return "produced_bikes"
}

// SalesDecisionModel represents the sales_decisions table
type SalesDecisionModel struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID     string          `gorm:"column:session_id;not null;index:idx_sales_decision_pending"`
	MarketID      uint            `gorm:"column:market_id;not null"`
	BikeTypeID    uint            `gorm:"column:bike_type_id;not null"`
	PriceSegment  string          `gorm:"column:price_segment;not null"`
	Quantity      int             `gorm:"column:quantity;not null"`
	DesiredPrice  decimal.Decimal `gorm:"column:desired_price;type:decimal(10,2);not null"`
	TransportCost decimal.Decimal `gorm:"column:transport_cost;type:decimal(10,2);not null"`
	DecisionMonth int             `gorm:"column:decision_month;not null"`
	DecisionYear  int             `gorm:"column:decision_year;not null"`
	IsProcessed   bool            `gorm:"column:is_processed;not null;default:false;index:idx_sales_decision_pending"`
	QuantitySold  int             `gorm:"column:quantity_sold;not null;default:0"`
	ActualRevenue decimal.Decimal `gorm:"column:actual_revenue;type:decimal(14,2);not null"`
	UnsoldReason  string          `gorm:"column:unsold_reason"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
}

func (SalesDecisionModel) TableName() string {
	return "sales_decisions"
}

// SalesOrderModel represents the sales_orders table
type SalesOrderModel struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID     string          `gorm:"column:session_id;not null;index:idx_sales_order_key"`
	MarketID      uint            `gorm:"column:market_id;not null;index:idx_sales_order_key"`
	BikeTypeID    uint            `gorm:"column:bike_type_id;not null;index:idx_sales_order_key"`
	PriceSegment  string          `gorm:"column:price_segment;not null;index:idx_sales_order_key"`
	BikeID        uint            `gorm:"column:bike_id;not null;uniqueIndex"`
	DecisionID    uint            `gorm:"column:decision_id;not null"`
	SaleMonth     int             `gorm:"column:sale_month;not null;index:idx_sales_order_key"`
	SaleYear      int             `gorm:"column:sale_year;not null;index:idx_sales_order_key"`
	SalePrice     decimal.Decimal `gorm:"column:sale_price;type:decimal(10,2);not null"`
	TransportCost decimal.Decimal `gorm:"column:transport_cost;type:decimal(10,2);not null"`
}

func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// MarketCompetitionModel represents the market_competitions table.
// At most one row exists per (session, market, bike type, segment, month, year).
type MarketCompetitionModel struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID         string          `gorm:"column:session_id;not null;uniqueIndex:idx_market_competition_key"`
	MarketID          uint            `gorm:"column:market_id;not null;uniqueIndex:idx_market_competition_key"`
	BikeTypeID        uint            `gorm:"column:bike_type_id;not null;uniqueIndex:idx_market_competition_key"`
	PriceSegment      string          `gorm:"column:price_segment;not null;uniqueIndex:idx_market_competition_key"`
	Month             int             `gorm:"column:month;not null;uniqueIndex:idx_market_competition_key"`
	Year              int             `gorm:"column:year;not null;uniqueIndex:idx_market_competition_key"`
	EstimatedDemand   int             `gorm:"column:estimated_demand;not null;default:0"`
	MaximumVolume     int             `gorm:"column:maximum_market_volume;not null;default:0"`
	TotalSupply       int             `gorm:"column:total_supply;not null;default:0"`
	ActualSalesVolume int             `gorm:"column:actual_sales_volume;not null;default:0"`
	SaturationLevel   float64         `gorm:"column:saturation_level;not null;default:0"`
	AveragePrice      decimal.Decimal `gorm:"column:average_market_price;type:decimal(10,2);not null"`
	PricePressure     float64         `gorm:"column:price_pressure;not null;default:0"`
	Elasticity        float64         `gorm:"column:demand_elasticity;not null;default:1"`
	OptimalPrice      decimal.Decimal `gorm:"column:optimal_price_point;type:decimal(10,2);not null"`
}

func (MarketCompetitionModel) TableName() string {
	return "market_competitions"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID                string          `gorm:"column:id;primaryKey"`
	SessionID         string          `gorm:"column:session_id;not null;index:idx_transaction_session_period"`
	CompetitorID      *uint           `gorm:"column:competitor_id;index"`
	Month             int             `gorm:"column:month;not null;index:idx_transaction_session_period"`
	Year              int             `gorm:"column:year;not null;index:idx_transaction_session_period"`
	Timestamp         time.Time       `gorm:"column:timestamp;not null"`
	TransactionType   string          `gorm:"column:transaction_type;not null"`
	Category          string          `gorm:"column:category;not null"`
	Amount            decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null"`
	BalanceBefore     decimal.Decimal `gorm:"column:balance_before;type:decimal(14,2);not null"`
	BalanceAfter      decimal.Decimal `gorm:"column:balance_after;type:decimal(14,2);not null"`
	Description       string          `gorm:"column:description;type:text"`
	RelatedEntityType string          `gorm:"column:related_entity_type"`
	RelatedEntityID   string          `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// AllModels lists every table in migration order
func AllModels() []interface{} {
	return []interface{}{
		&SessionModel{},
		&MarketModel{},
		&BikeTypeModel{},
		&MarketDemandModel{},
		&MarketPriceSensitivityModel{},
		&BikePriceModel{},
		&BusinessStrategyEffectModel{},
		&CompetitorModel{},
		&CompetitorProductionModel{},
		&CompetitorSaleModel{},
		&ProducedBikeModel{},
		&SalesDecisionModel{},
		&SalesOrderModel{},
		&MarketCompetitionModel{},
		&TransactionModel{},
	}
}
