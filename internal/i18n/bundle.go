package i18n

// Translations is the string table of the storefront UI
type Translations struct {
	Nav struct {
		Home       string `json:"home"`
		Products   string `json:"products"`
		Categories string `json:"categories"`
		About      string `json:"about"`
		Contact    string `json:"contact"`
		Login      string `json:"login"`
	} `json:"nav"`
	Hero struct {
		Title        string `json:"title"`
		Subtitle     string `json:"subtitle"`
		CTA          string `json:"cta"`
		SecondaryCTA string `json:"secondary_cta"`
	} `json:"hero"`
	Categories struct {
		Title   string `json:"title"`
		ViewAll string `json:"view_all"`
	} `json:"categories"`
	Products struct {
		Title     string `json:"title"`
		AddToCart string `json:"add_to_cart"`
		Price     string `json:"price"`
	} `json:"products"`
	About struct {
		Title   string `json:"title"`
		Mission string `json:"mission"`
		Vision  string `json:"vision"`
	} `json:"about"`
	Footer struct {
		Rights     string `json:"rights"`
		ContactUs  string `json:"contact_us"`
		QuickLinks string `json:"quick_links"`
	} `json:"footer"`
	Cart struct {
		Title            string `json:"title"`
		Empty            string `json:"empty"`
		Items            string `json:"items"`
		Quantity         string `json:"quantity"`
		Total            string `json:"total"`
		Subtotal         string `json:"subtotal"`
		Shipping         string `json:"shipping"`
		Checkout         string `json:"checkout"`
		ContinueShopping string `json:"continue_shopping"`
		Remove           string `json:"remove"`
		Summary          string `json:"summary"`
		FreeShipping     string `json:"free_shipping"`
	} `json:"cart"`
	Wishlist struct {
		Title            string `json:"title"`
		Empty            string `json:"empty"`
		Items            string `json:"items"`
		ContinueShopping string `json:"continue_shopping"`
		Clear            string `json:"clear"`
	} `json:"wishlist"`
	Checkout struct {
		OrderPlaced string `json:"order_placed"`
		Failed      string `json:"failed"`
	} `json:"checkout"`
}

// LocaleBundle is what the localization provider hands to the presentation layer
type LocaleBundle struct {
	Language  Language     `json:"language"`
	Direction Direction    `json:"dir"`
	Strings   Translations `json:"t"`
}

var bundles = map[Language]Translations{
	English: english(),
	Arabic:  arabic(),
}

// Bundle returns the strings and direction for lang. Unsupported languages get Default.
func Bundle(lang Language) LocaleBundle {
	if !lang.Valid() {
		lang = Default
	}
	return LocaleBundle{
		Language:  lang,
		Direction: lang.Direction(),
		Strings:   bundles[lang],
	}
}

func english() Translations {
	var t Translations
	t.Nav.Home = "Home"
	t.Nav.Products = "Products"
	t.Nav.Categories = "Categories"
	t.Nav.About = "About Us"
	t.Nav.Contact = "Contact"
	t.Nav.Login = "Login / Register"

	t.Hero.Title = "Advanced Medical Solutions for a Better Life"
	t.Hero.Subtitle = "Al-Andalus Medical provides premium healthcare equipment and supplies trusted by professionals."
	t.Hero.CTA = "Explore Products"
	t.Hero.SecondaryCTA = "Our Services"

	t.Categories.Title = "Browse by Category"
	t.Categories.ViewAll = "View All Categories"

	t.Products.Title = "Featured Products"
	t.Products.AddToCart = "Add to Cart"
	t.Products.Price = "Price"

	t.About.Title = "About Al-Andalus"
	t.About.Mission = "Our Mission: To provide top-tier medical supplies ensuring safety and reliability."
	t.About.Vision = "Our Vision: To be the leading medical distributor in the region."

	t.Footer.Rights = "© 2024 Al-Andalus Medical. All rights reserved."
	t.Footer.ContactUs = "Contact Us"
	t.Footer.QuickLinks = "Quick Links"

	t.Cart.Title = "Shopping Cart"
	t.Cart.Empty = "Your cart is empty"
	t.Cart.Items = "items"
	t.Cart.Quantity = "Quantity"
	t.Cart.Total = "Total"
	t.Cart.Subtotal = "Subtotal"
	t.Cart.Shipping = "Shipping"
	t.Cart.Checkout = "Proceed to Checkout"
	t.Cart.ContinueShopping = "Continue Shopping"
	t.Cart.Remove = "Remove"
	t.Cart.Summary = "Order Summary"
	t.Cart.FreeShipping = "Free"

	t.Wishlist.Title = "My Wishlist"
	t.Wishlist.Empty = "Your wishlist is empty"
	t.Wishlist.Items = "saved items"
	t.Wishlist.ContinueShopping = "Explore Products"
	t.Wishlist.Clear = "Clear Wishlist"

	t.Checkout.OrderPlaced = "Order placed successfully! A notification has been sent to the administration."
	t.Checkout.Failed = "Something went wrong."
	return t
}

func arabic() Translations {
	var t Translations
	t.Nav.Home = "الرئيسية"
	t.Nav.Products = "المنتجات"
	t.Nav.Categories = "الأقسام"
	t.Nav.About = "من نحن"
	t.Nav.Contact = "اتصل بنا"
	t.Nav.Login = "تسجيل الدخول"

	t.Hero.Title = "حلول طبية متطورة لحياة أفضل"
	t.Hero.Subtitle = "الأندلس للمستلزمات الطبية توفر معدات ومستلزمات رعاية صحية متميزة يثق بها المحترفون."
	t.Hero.CTA = "تصفح المنتجات"
	t.Hero.SecondaryCTA = "خدماتنا"

	t.Categories.Title = "تصفح حسب القسم"
	t.Categories.ViewAll = "عرض كل الأقسام"

	t.Products.Title = "منتجات مميزة"
	t.Products.AddToCart = "أضف للسلة"
	t.Products.Price = "السعر"

	t.About.Title = "عن الأندلس"
	t.About.Mission = "مهمتنا: توفير مستلزمات طبية عالية الجودة لضمان السلامة والموثوقية."
	t.About.Vision = "رؤيتنا: أن نكون الموزع الطبي الرائد في المنطقة."

	t.Footer.Rights = "© 2024 الأندلس للمستلزمات الطبية. جميع الحقوق محفوظة."
	t.Footer.ContactUs = "اتصل بنا"
	t.Footer.QuickLinks = "روابط سريعة"

	t.Cart.Title = "سلة المشتريات"
	t.Cart.Empty = "سلة المشتريات فارغة"
	t.Cart.Items = "عناصر"
	t.Cart.Quantity = "الكمية"
	t.Cart.Total = "الإجمالي"
	t.Cart.Subtotal = "المجموع الفرعي"
	t.Cart.Shipping = "الشحن"
	t.Cart.Checkout = "إتمام الشراء"
	t.Cart.ContinueShopping = "متابعة التسوق"
	t.Cart.Remove = "حذف"
	t.Cart.Summary = "ملخص الطلب"
	t.Cart.FreeShipping = "مجاني"

	t.Wishlist.Title = "قائمة المفضلة"
	t.Wishlist.Empty = "قائمة المفضلة فارغة"
	t.Wishlist.Items = "عناصر محفوظة"
	t.Wishlist.ContinueShopping = "تصفح المنتجات"
	t.Wishlist.Clear = "مسح القائمة"

	t.Checkout.OrderPlaced = "تم الطلب بنجاح! تم إرسال إشعار إلى الإدارة."
	t.Checkout.Failed = "حدث خطأ ما. يرجى المحاولة مرة أخرى."
	return t
}
