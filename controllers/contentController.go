package controllers

import "github.com/fireguard/cms-api/models"

var Blogs = Resource[models.Blog]{
	Singular: "blog",
	Plural:   "blogs",
	Label:    "Blog post",
	Order:    "created_at desc",
}

var Gallery = Resource[models.Gallery]{
	Singular: "galleryItem",
	Plural:   "gallery",
	Label:    "Gallery item",
	Order:    "created_at desc",
}

var Portfolio = Resource[models.Portfolio]{
	Singular: "portfolioItem",
	Plural:   "portfolio",
	Label:    "Portfolio item",
	Order:    "created_at desc",
}

var Customers = Resource[models.Customer]{
	Singular: "customer",
	Plural:   "customers",
	Label:    "Customer",
	Order:    "name asc",
}

var ContactInfo = Resource[models.ContactInfo]{
	Singular: "contactInfo",
	Plural:   "contactInfo",
	Label:    "Contact info",
}

var AboutStats = Resource[models.AboutStats]{
	Singular: "aboutStat",
	Plural:   "aboutStats",
	Label:    "About stat",
	Order:    "sort_order asc, id asc",
}
