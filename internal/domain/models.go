// Package domain defines the persisted entity types of the jewelry store:
// catalog products, admin users, the three site-wide singleton records
// (contact, about, homepage), contact-form messages, and exchange rates.
// The same structs are shared by every storage backend: GORM maps them to
// relational tables, the document backend maps them to BSON, and the
// in-memory backend stores them directly.
package domain

import "time"

// Product categories accepted by the catalog.
const (
	CategoryRing          = "ring"
	CategoryEarring       = "earring"
	CategoryNecklace      = "necklace"
	CategoryBraceletThin  = "bracelet-thin"
	CategoryBraceletThick = "bracelet-thick"
	CategoryChoker        = "choker"
)

// Categories lists every valid product category.
var Categories = []string{
	CategoryRing,
	CategoryEarring,
	CategoryNecklace,
	CategoryBraceletThin,
	CategoryBraceletThick,
	CategoryChoker,
}

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Flag values used by the stringly-typed boolean fields below. The admin
// client compares these by string equality, so they are stored as the
// literal strings "true"/"false" rather than native booleans.
const (
	FlagTrue  = "true"
	FlagFalse = "false"
)

// SingletonID is the fixed identifier under which the singleton records
// (contact, about, homepage) are stored in the database backends. A
// well-known id makes "ensure defaults" idempotent and lets upserts target
// a single row/document atomically.
const SingletonID = "default"

// Product is a catalog item. Weight is a decimal string in grams (e.g.
// "5.00"); GoldKarat is 14, 18 or 22. IsActive and HasWorkmanship are
// "true"/"false" strings; only products with IsActive == "true" appear in
// public listings.
type Product struct {
	ID             string `json:"id"             gorm:"type:char(36);primaryKey"        bson:"_id"`
	Name           string `json:"name"           gorm:"type:varchar(255);not null"      bson:"name"`
	Category       string `json:"category"       gorm:"type:varchar(32);not null;index" bson:"category"`
	Weight         string `json:"weight"         gorm:"type:varchar(16);not null"       bson:"weight"`
	GoldKarat      int    `json:"goldKarat"      gorm:"not null"                        bson:"goldKarat"`
	ImageURL       string `json:"imageUrl"       gorm:"type:text;not null"              bson:"imageUrl"`
	IsActive       string `json:"isActive"       gorm:"type:varchar(8);not null;index"  bson:"isActive"`
	HasWorkmanship string `json:"hasWorkmanship" gorm:"type:varchar(8);not null"        bson:"hasWorkmanship"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// User is an admin-panel account. Password holds an argon2id encoded hash,
// never plaintext, and is excluded from JSON serialization.
type User struct {
	ID       string `json:"id"       gorm:"type:char(36);primaryKey"                  bson:"_id"`
	Username string `json:"username" gorm:"type:varchar(64);not null;uniqueIndex"     bson:"username"`
	Password string `json:"-"        gorm:"type:text;not null"                        bson:"password"`
	Role     string `json:"role"     gorm:"type:varchar(32);not null;default:'admin'" bson:"role"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ContactInfo is a singleton record with the store's address, phone and
// opening hours.
type ContactInfo struct {
	ID           string `json:"id"           gorm:"type:char(36);primaryKey"   bson:"_id"`
	Address      string `json:"address"      gorm:"type:text;not null"         bson:"address"`
	Phone        string `json:"phone"        gorm:"type:varchar(64);not null"  bson:"phone"`
	WorkingHours string `json:"workingHours" gorm:"type:varchar(255);not null" bson:"workingHours"`
}

// TableName returns the database table name for ContactInfo.
func (ContactInfo) TableName() string { return "contact_info" }

// AboutInfo is a singleton record backing the "about us" page.
type AboutInfo struct {
	ID              string `json:"id"              gorm:"type:char(36);primaryKey"   bson:"_id"`
	Title           string `json:"title"           gorm:"type:varchar(255);not null" bson:"title"`
	Description     string `json:"description"     gorm:"type:text;not null"         bson:"description"`
	ExperienceYears int    `json:"experienceYears" gorm:"not null"                   bson:"experienceYears"`
	CustomerCount   int    `json:"customerCount"   gorm:"not null"                   bson:"customerCount"`
	ImageURL        string `json:"imageUrl"        gorm:"type:text;not null"         bson:"imageUrl"`
}

// TableName returns the database table name for AboutInfo.
func (AboutInfo) TableName() string { return "about_info" }

// HomepageInfo is a singleton record backing the landing page hero section.
type HomepageInfo struct {
	ID          string `json:"id"          gorm:"type:char(36);primaryKey"   bson:"_id"`
	Title       string `json:"title"       gorm:"type:varchar(255);not null" bson:"title"`
	Description string `json:"description" gorm:"type:text;not null"         bson:"description"`
	ImageURL    string `json:"imageUrl"    gorm:"type:text;not null"         bson:"imageUrl"`
}

// TableName returns the database table name for HomepageInfo.
func (HomepageInfo) TableName() string { return "homepage_info" }

// Message is a contact-form submission. CreatedAt is assigned once at
// creation and never modified; IsRead is a "true"/"false" string toggled
// from the admin panel.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"       bson:"_id"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null"     bson:"name"`
	Phone     string    `json:"phone"     gorm:"type:varchar(64);not null"      bson:"phone"`
	Message   string    `json:"message"   gorm:"type:text;not null"             bson:"message"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"                 bson:"createdAt"`
	IsRead    string    `json:"isRead"    gorm:"type:varchar(8);not null;index" bson:"isRead"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// ExchangeRate is a currency rate keyed by its currency code (the natural
// key, e.g. "USD"). Rate is a decimal string.
type ExchangeRate struct {
	ID       string `json:"id"       gorm:"type:char(36);primaryKey"              bson:"_id"`
	Currency string `json:"currency" gorm:"type:varchar(32);not null;uniqueIndex" bson:"currency"`
	Rate     string `json:"rate"     gorm:"type:varchar(32);not null"             bson:"rate"`
}

// TableName returns the database table name for ExchangeRate.
func (ExchangeRate) TableName() string { return "exchange_rate" }
