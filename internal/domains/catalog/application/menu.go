package application

import "github.com/shopspring/decimal"

type menuItem struct {
	category    string
	name        string
	price       decimal.Decimal
	description string
}

var defaultMenu = []menuItem{
	// coffee
	{"COFFEE", "Java House Espresso", decimal.RequireFromString("3.00"), "A rich, single-origin shot, perfectly pulled. Bold and balanced."},
	{"COFFEE", "Coffee Misto", decimal.RequireFromString("4.00"), "A soothing blend of filtered house coffee and steamed milk. Simple and comforting."},
	{"COFFEE", "Cappuccino", decimal.RequireFromString("4.50"), "Espresso with steamed milk and a layer of velvety foam. Perfectly balanced and creamy."},
	{"COFFEE", "Caramel Macchiato", decimal.RequireFromString("5.25"), "Espresso with vanilla-flavored syrup, steamed milk, and caramel drizzle. Sweet and indulgent."},
	{"COFFEE", "Mocha Frappuccino", decimal.RequireFromString("6.50"), "Iced blended coffee drink mixed with rich chocolate syrup, milk, and ice, topped with whipped cream."},
	// cupcakes
	{"CUPCAKES", "Vanilla Bean Bliss", decimal.RequireFromString("4.00"), "Fluffy vanilla cake infused with real vanilla bean, finished with a sweet buttercream swirl."},
	{"CUPCAKES", "Red Velvet Dream", decimal.RequireFromString("4.25"), "Moist, ruby-red cake with a hint of cocoa, topped with classic cream cheese frosting."},
	{"CUPCAKES", "Triple Chocolate Overload", decimal.RequireFromString("4.50"), "Rich dark chocolate cake with chocolate chips, crowned with smooth chocolate ganache frosting."},
	{"CUPCAKES", "Lemon Zest Delight", decimal.RequireFromString("4.00"), "Bright and tangy lemon cake with zesty lemon frosting. Refreshing and delightful."},
	{"CUPCAKES", "Strawberry Shortcake", decimal.RequireFromString("4.25"), "Vanilla cake topped with fresh strawberries and whipped cream. Classic and sweet."},
	// cookies
	{"COOKIES", "Signature Chocolate Chip", decimal.RequireFromString("2.50"), "A warm, gooey classic with melted milk and dark chocolate chips."},
	{"COOKIES", "Oatmeal Cranberry White Chocolate", decimal.RequireFromString("2.75"), "Soft, chewy oatmeal cookie loaded with dried cranberries and white chocolate chunks."},
	{"COOKIES", "Double Fudge Brownie Cookie", decimal.RequireFromString("3.00"), "Rich, fudgy cookie with double the chocolate. Dense and decadent."},
	{"COOKIES", "Snickerdoodle", decimal.RequireFromString("2.50"), "Soft and chewy cinnamon-sugar cookie with a buttery, melt-in-your-mouth texture."},
	// croissants
	{"CROISSANTS", "Classic Butter Croissant", decimal.RequireFromString("3.75"), "Light, flaky, and golden-brown pastry layers, perfect served warm."},
	{"CROISSANTS", "Cinnamon Swirl Croissant", decimal.RequireFromString("4.50"), "Buttery croissant dough rolled with a sweet cinnamon sugar filling and finished with a light vanilla glaze."},
	{"CROISSANTS", "Chocolate Almond Croissant", decimal.RequireFromString("4.75"), "Buttery croissant filled with rich chocolate and topped with sliced almonds. Indulgent and satisfying."},
	{"CROISSANTS", "Plain Croissant", decimal.RequireFromString("3.50"), "Simple, buttery, and flaky croissant. A classic French pastry at its finest."},
	{"CROISSANTS", "Ham and Cheese Croissant", decimal.RequireFromString("5.00"), "Savory croissant filled with premium ham and melted cheese. Perfect for a hearty breakfast."},
	// pastries
	{"PASTRIES", "Cheese Danish", decimal.RequireFromString("4.50"), "Flaky pastry filled with sweet cream cheese. Buttery and rich."},
	{"PASTRIES", "Blueberry Muffin", decimal.RequireFromString("3.50"), "Moist muffin bursting with fresh blueberries. Topped with a sweet crumb topping."},
	{"PASTRIES", "Apple Turnover", decimal.RequireFromString("4.25"), "Flaky pastry filled with spiced apple filling. Warm and comforting."},
	{"PASTRIES", "Almond Croissant", decimal.RequireFromString("4.75"), "Buttery croissant filled with almond paste and topped with sliced almonds. Rich and nutty."},
	{"PASTRIES", "Chocolate Eclair", decimal.RequireFromString("4.50"), "Light choux pastry filled with vanilla cream and topped with rich chocolate glaze."},
	// sandwiches
	{"SANDWICHES", "BLT Classic", decimal.RequireFromString("7.50"), "Crispy bacon, fresh lettuce, and ripe tomatoes on toasted bread. A timeless favorite."},
	{"SANDWICHES", "Caprese Sandwich", decimal.RequireFromString("8.00"), "Fresh mozzarella, ripe tomatoes, and basil with balsamic glaze on ciabatta. Light and fresh."},
	{"SANDWICHES", "Grilled Chicken Panini", decimal.RequireFromString("8.50"), "Tender grilled chicken with pesto, mozzarella, and sun-dried tomatoes on pressed ciabatta."},
	{"SANDWICHES", "Turkey Avocado Club", decimal.RequireFromString("9.00"), "Sliced turkey, crispy bacon, avocado, lettuce, and tomato on multigrain bread. Hearty and satisfying."},
	{"SANDWICHES", "Veggie Delight", decimal.RequireFromString("7.00"), "Fresh vegetables, hummus, and sprouts on whole grain bread. Healthy and delicious."},
	// salads
	{"SALADS", "Caesar Salad", decimal.RequireFromString("8.50"), "Crisp romaine lettuce with parmesan cheese, croutons, and classic Caesar dressing."},
	{"SALADS", "Cobb Salad", decimal.RequireFromString("9.50"), "Mixed greens with grilled chicken, bacon, hard-boiled eggs, avocado, and blue cheese. A complete meal."},
	{"SALADS", "Garden Fresh Salad", decimal.RequireFromString("7.50"), "Mixed greens with seasonal vegetables, cherry tomatoes, and your choice of dressing. Fresh and crisp."},
	{"SALADS", "Grilled Chicken Salad", decimal.RequireFromString("9.00"), "Tender grilled chicken over mixed greens with vegetables and your choice of dressing."},
	{"SALADS", "Quinoa Power Bowl", decimal.RequireFromString("9.75"), "Protein-packed quinoa with roasted vegetables, chickpeas, and tahini dressing. Nutritious and filling."},
	// smoothies
	{"SMOOTHIES", "Berry Blast Smoothie", decimal.RequireFromString("5.50"), "Mixed berries blended with yogurt and a touch of honey. Refreshing and antioxidant-rich."},
	{"SMOOTHIES", "Chocolate Banana Smoothie", decimal.RequireFromString("5.75"), "Rich chocolate blended with ripe bananas and milk. Creamy and indulgent."},
	{"SMOOTHIES", "Green Power Smoothie", decimal.RequireFromString("6.00"), "Spinach, kale, pineapple, and banana blended for a nutritious energy boost."},
	{"SMOOTHIES", "Peach Mango Smoothie", decimal.RequireFromString("5.75"), "Tropical peaches and mangoes blended with yogurt. Sweet and refreshing."},
	{"SMOOTHIES", "Tropical Paradise Smoothie", decimal.RequireFromString("6.25"), "Pineapple, mango, coconut, and banana blended for a taste of the tropics."},
}
