package models

import "github.com/maisdocacau/storefront/internal/constants"

// DefaultProducts 内置商品目录，用于首次初始化与测试
func DefaultProducts() []Product {
	products := []Product{
		{
			ID:          "amendo-cacau-caramelizada",
			Name:        "Amêndoa de Cacau Caramelizada",
			Description: "Deliciosas amêndoas de cacau caramelizadas, um petisco irresistível com o sabor autêntico do cacau. Perfeito para um lanche saudável e energético.",
			Price:       MustMoney("28.90"),
			Image:       "/images/products/Amendo de cacau Caramelizada 125g.jpg",
			Category:    constants.CategorySnack,
			Weight:      "125g",
			Featured:    true,
		},
		{
			ID:              "cauchaca-carvalho-500ml",
			Name:            "Cauchaça Armazenada em Barril de Carvalho",
			Description:     "Nossa cauchaça premium armazenada em barril de carvalho, conferindo um sabor amadeirado único e aroma complexo. Perfeita para apreciadores de destilados finos.",
			Price:           MustMoney("89.90"),
			Image:           "/images/products/CauchacaArmazenadaembarrildecarvalho 500ml.jpg",
			Category:        constants.CategoryAlcohol,
			Weight:          "500ml",
			Featured:        true,
			ContainsAlcohol: true,
		},
		{
			ID:              "cauchaca-carvalho-mini",
			Name:            "Mini Cauchaça Armazenada em Barril de Carvalho",
			Description:     "Versão compacta da nossa cauchaça premium armazenada em barril de carvalho. Ideal para experimentar ou presentear.",
			Price:           MustMoney("29.90"),
			Image:           "/images/products/CauchacaArmazenadaembarrildecarvalho mini 30ml.jpg",
			Category:        constants.CategoryAlcohol,
			Weight:          "30ml",
			IsNew:           true,
			ContainsAlcohol: true,
		},
		{
			ID:          "cha-de-cacau",
			Name:        "Chá de Cacau",
			Description: "Chá natural feito a partir da casca do cacau, rico em antioxidantes e com sabor suave e aromático. Uma bebida reconfortante para qualquer hora do dia.",
			Price:       MustMoney("18.50"),
			Image:       "/images/products/Cha de cacau 30g.jpg",
			Category:    constants.CategoryTea,
			Weight:      "30g",
		},
		{
			ID:          "granola-baiana",
			Name:        "Granola Baiana",
			Description: "Granola artesanal com ingredientes típicos da Bahia, incluindo nibs de cacau. Um café da manhã nutritivo com o sabor autêntico da culinária baiana.",
			Price:       MustMoney("24.90"),
			Image:       "/images/products/Granola Baiana 150g.jpg",
			Category:    constants.CategorySnack,
			Weight:      "150g",
			Featured:    true,
		},
		{
			ID:          "mel-de-cacau",
			Name:        "Mel de Cacau",
			Description: "Mel natural extraído da polpa do cacau, com sabor adocicado e notas frutadas. Perfeito para acompanhar pães, queijos ou adicionar em receitas.",
			Price:       MustMoney("32.90"),
			Image:       "/images/products/Mell de cacau 175ml.jpg",
			Category:    constants.CategoryCondiment,
			Weight:      "175ml",
			Featured:    true,
		},
		{
			ID:          "mellato-reducao-mel-cacau",
			Name:        "Mellato - Redução de Mel de Cacau",
			Description: "Redução concentrada do mel de cacau, com sabor intenso e textura encorpada. Ideal para finalizar sobremesas ou criar molhos gourmet.",
			Price:       MustMoney("38.50"),
			Image:       "/images/products/Mellato reducao de mell de cacau 140g.jpg",
			Category:    constants.CategoryCondiment,
			Weight:      "140g",
			IsNew:       true,
		},
		{
			ID:          "mel-de-cacau-gelado",
			Name:        "Mel de Cacau Gelado",
			Description: "Versão refrescante do nosso mel de cacau, pronto para consumo. Uma bebida natural e energética para os dias quentes.",
			Price:       MustMoney("45.90"),
			Image:       "/images/products/Melldecacau gelado 1litro.jpg",
			Category:    constants.CategoryBeverage,
			Weight:      "1 litro",
			IsNew:       true,
		},
		{
			ID:          "nibs-de-cacau",
			Name:        "Nibs de Cacau",
			Description: "Pedaços de amêndoa de cacau torrados, com sabor intenso e levemente amargo. Rico em antioxidantes e nutrientes, perfeito para adicionar em receitas ou consumir puro.",
			Price:       MustMoney("19.90"),
			Image:       "/images/products/Nibsdecacau50g.jpg",
			Category:    constants.CategorySnack,
			Weight:      "50g",
			Featured:    true,
		},
		{
			ID:          "vinagre-balsamico-cacau",
			Name:        "Vinagre Balsâmico de Cacau",
			Description: "Vinagre balsâmico artesanal produzido a partir da fermentação do cacau. Um toque gourmet para saladas e marinadas.",
			Price:       MustMoney("34.90"),
			Image:       "/images/products/Vinagre balsamico de cacau 250ml.jpg",
			Category:    constants.CategoryCondiment,
			Weight:      "250ml",
		},
		{
			ID:          "vinagre-fruta-cacau",
			Name:        "Vinagre de Fruta de Cacau",
			Description: "Vinagre artesanal produzido com a polpa fresca do cacau. Sabor único e refrescante para suas receitas.",
			Price:       MustMoney("29.90"),
			Image:       "/images/products/VinagreDeFrutaCacau250ml.jpg",
			Category:    constants.CategoryCondiment,
			Weight:      "250ml",
			IsNew:       true,
		},
		{
			ID:              "cauchaca-original",
			Name:            "Cauchaça Original",
			Description:     "Nossa cauchaça tradicional, destilada artesanalmente a partir da polpa fermentada do cacau. Um destilado único com aroma e sabor inconfundíveis.",
			Price:           MustMoney("59.90"),
			Image:           "/images/products/cauchaca original 160ml.jpg",
			Category:        constants.CategoryAlcohol,
			Weight:          "160ml",
			Featured:        true,
			ContainsAlcohol: true,
		},
	}
	for i := range products {
		products[i].Stock = StockUnlimited
		products[i].IsActive = true
		products[i].SortOrder = i
	}
	return products
}
