package i18n

var catalog = map[string]map[string]string{
	LocalePtBR: {
		// 通用
		"error.bad_request":       "Requisição inválida",
		"error.unauthorized":      "Faça login para continuar",
		"error.forbidden":         "Sem permissão para esta operação",
		"error.not_found":         "Recurso não encontrado",
		"error.internal":          "Erro interno, tente novamente",
		"error.too_many_requests": "Muitas tentativas, aguarde %d segundos",
		"error.session_invalid":   "Sessão inválida",

		// 商品
		"error.product_not_found":     "Produto não encontrado",
		"error.product_fetch_failed":  "Falha ao carregar produtos",
		"error.product_update_failed": "Falha ao salvar o produto",
		"error.category_invalid":      "Categoria inválida",
		"error.product_out_of_stock":  "Produto sem estoque suficiente",
		"error.product_invalid":       "Dados do produto inválidos",

		// 购物车
		"error.quantity_invalid":          "Quantidade inválida",
		"error.cart_item_not_found":       "Item não está no carrinho",
		"error.age_verification_required": "Confirme sua idade para comprar bebidas alcoólicas",
		"error.age_verification_failed":   "Não foi possível verificar sua idade",
		"error.cart_fetch_failed":         "Falha ao carregar o carrinho",
		"error.cart_update_failed":        "Falha ao atualizar o carrinho",

		// 结算
		"error.cart_empty":              "Seu carrinho está vazio",
		"error.checkout_not_started":    "Checkout não iniciado",
		"error.checkout_step_invalid":   "Etapa do checkout inválida",
		"error.address_field_required":  "Preencha os campos obrigatórios: %s",
		"error.neighborhood_not_served": "Ainda não entregamos em %s",
		"error.payment_method_invalid":  "Forma de pagamento inválida",
		"error.payment_failed":          "Pagamento recusado, tente novamente",
		"error.checkout_in_progress":    "Pagamento em processamento",
		"error.order_create_failed":     "Falha ao criar o pedido",
		"error.checkout_failed":         "Falha no checkout",

		// 订单
		"error.order_not_found":          "Pedido não encontrado",
		"error.order_status_invalid":     "Status do pedido inválido",
		"error.order_status_not_allowed": "Mudança de status não permitida",
		"error.order_fetch_failed":       "Falha ao carregar pedidos",
		"error.order_update_failed":      "Falha ao atualizar o pedido",

		// 用户
		"error.user_id_invalid":       "Usuário inválido",
		"error.user_id_type_invalid":  "Usuário inválido",
		"error.profile_not_found":     "Usuário não encontrado",
		"error.profile_invalid":       "Dados do perfil inválidos",
		"error.profile_update_failed": "Falha ao atualizar o perfil",
		"error.token_invalid":         "Sessão expirada, faça login novamente",

		// 钱包登录
		"error.wallet_payload_invalid": "Resposta da carteira inválida",
		"error.wallet_auth_rejected":   "Login pela carteira recusado",
		"error.wallet_nonce_invalid":   "Desafio de login expirado, tente novamente",
		"error.wallet_nonce_mismatch":  "Assinatura não corresponde ao desafio",
		"error.wallet_address_invalid": "Endereço de carteira inválido",
		"error.wallet_auth_failed":     "Falha no login pela carteira",

		// 后台
		"error.admin_id_invalid":        "Administrador inválido",
		"error.admin_id_type_invalid":   "Administrador inválido",
		"error.admin_not_found":         "Administrador não encontrado",
		"error.login_invalid":           "Usuário ou senha incorretos",
		"error.login_failed":            "Falha no login",
		"error.captcha_required":        "Informe o código de verificação",
		"error.captcha_invalid":         "Código de verificação incorreto",
		"error.captcha_disabled":        "Código de verificação desativado",
		"error.captcha_generate_failed": "Falha ao gerar o código",
		"error.permission_denied":       "Sem permissão para esta operação",
		"error.authz_role_invalid":      "Papel inexistente",
		"error.authz_self_update":       "Você não pode alterar seus próprios papéis",
		"error.authz_unavailable":       "Controle de acesso indisponível",
		"error.authz_failed":            "Falha ao atualizar permissões",
		"error.audit_log_fetch_failed":  "Falha ao carregar auditoria",
	},
	LocaleEnUS: {
		// 通用
		"error.bad_request":       "Invalid request",
		"error.unauthorized":      "Please sign in to continue",
		"error.forbidden":         "You are not allowed to do this",
		"error.not_found":         "Resource not found",
		"error.internal":          "Internal error, please try again",
		"error.too_many_requests": "Too many attempts, wait %d seconds",
		"error.session_invalid":   "Invalid session",

		// 商品
		"error.product_not_found":     "Product not found",
		"error.product_fetch_failed":  "Failed to load products",
		"error.product_update_failed": "Failed to save product",
		"error.category_invalid":      "Invalid category",
		"error.product_out_of_stock":  "Not enough stock",
		"error.product_invalid":       "Invalid product data",

		// 购物车
		"error.quantity_invalid":          "Invalid quantity",
		"error.cart_item_not_found":       "Item is not in the cart",
		"error.age_verification_required": "Verify your age to buy alcoholic products",
		"error.age_verification_failed":   "Age verification failed",
		"error.cart_fetch_failed":         "Failed to load cart",
		"error.cart_update_failed":        "Failed to update cart",

		// 结算
		"error.cart_empty":              "Your cart is empty",
		"error.checkout_not_started":    "Checkout has not started",
		"error.checkout_step_invalid":   "Invalid checkout step",
		"error.address_field_required":  "Fill in the required fields: %s",
		"error.neighborhood_not_served": "We do not deliver to %s yet",
		"error.payment_method_invalid":  "Invalid payment method",
		"error.payment_failed":          "Payment failed, please try again",
		"error.checkout_in_progress":    "Payment is already being processed",
		"error.order_create_failed":     "Failed to create order",
		"error.checkout_failed":         "Checkout failed",

		// 订单
		"error.order_not_found":          "Order not found",
		"error.order_status_invalid":     "Invalid order status",
		"error.order_status_not_allowed": "Status change not allowed",
		"error.order_fetch_failed":       "Failed to load orders",
		"error.order_update_failed":      "Failed to update order",

		// 用户
		"error.user_id_invalid":       "Invalid user",
		"error.user_id_type_invalid":  "Invalid user",
		"error.profile_not_found":     "User not found",
		"error.profile_invalid":       "Invalid profile data",
		"error.profile_update_failed": "Failed to update profile",
		"error.token_invalid":         "Session expired, please sign in again",

		// 钱包登录
		"error.wallet_payload_invalid": "Invalid wallet response",
		"error.wallet_auth_rejected":   "Wallet sign-in was rejected",
		"error.wallet_nonce_invalid":   "Sign-in challenge expired, try again",
		"error.wallet_nonce_mismatch":  "Signature does not match the challenge",
		"error.wallet_address_invalid": "Invalid wallet address",
		"error.wallet_auth_failed":     "Wallet sign-in failed",

		// 后台
		"error.admin_id_invalid":        "Invalid admin",
		"error.admin_id_type_invalid":   "Invalid admin",
		"error.admin_not_found":         "Admin not found",
		"error.login_invalid":           "Wrong username or password",
		"error.login_failed":            "Sign-in failed",
		"error.captcha_required":        "Enter the verification code",
		"error.captcha_invalid":         "Wrong verification code",
		"error.captcha_disabled":        "Verification code is disabled",
		"error.captcha_generate_failed": "Failed to generate code",
		"error.permission_denied":       "Permission denied",
		"error.authz_role_invalid":      "Unknown role",
		"error.authz_self_update":       "You cannot change your own roles",
		"error.authz_unavailable":       "Access control unavailable",
		"error.authz_failed":            "Failed to update permissions",
		"error.audit_log_fetch_failed":  "Failed to load audit logs",
	},
	LocaleEsES: {
		// 通用
		"error.bad_request":       "Solicitud inválida",
		"error.unauthorized":      "Inicia sesión para continuar",
		"error.forbidden":         "No tienes permiso para esta operación",
		"error.not_found":         "Recurso no encontrado",
		"error.internal":          "Error interno, inténtalo de nuevo",
		"error.too_many_requests": "Demasiados intentos, espera %d segundos",
		"error.session_invalid":   "Sesión inválida",

		// 商品
		"error.product_not_found":     "Producto no encontrado",
		"error.product_fetch_failed":  "Error al cargar productos",
		"error.product_update_failed": "Error al guardar el producto",
		"error.category_invalid":      "Categoría inválida",
		"error.product_out_of_stock":  "Stock insuficiente",
		"error.product_invalid":       "Datos del producto inválidos",

		// 购物车
		"error.quantity_invalid":          "Cantidad inválida",
		"error.cart_item_not_found":       "El artículo no está en el carrito",
		"error.age_verification_required": "Verifica tu edad para comprar bebidas alcohólicas",
		"error.age_verification_failed":   "No se pudo verificar tu edad",
		"error.cart_fetch_failed":         "Error al cargar el carrito",
		"error.cart_update_failed":        "Error al actualizar el carrito",

		// 结算
		"error.cart_empty":              "Tu carrito está vacío",
		"error.checkout_not_started":    "El pago no ha comenzado",
		"error.checkout_step_invalid":   "Paso de pago inválido",
		"error.address_field_required":  "Completa los campos obligatorios: %s",
		"error.neighborhood_not_served": "Aún no entregamos en %s",
		"error.payment_method_invalid":  "Método de pago inválido",
		"error.payment_failed":          "Pago rechazado, inténtalo de nuevo",
		"error.checkout_in_progress":    "El pago ya se está procesando",
		"error.order_create_failed":     "Error al crear el pedido",
		"error.checkout_failed":         "Error en el pago",

		// 订单
		"error.order_not_found":          "Pedido no encontrado",
		"error.order_status_invalid":     "Estado del pedido inválido",
		"error.order_status_not_allowed": "Cambio de estado no permitido",
		"error.order_fetch_failed":       "Error al cargar pedidos",
		"error.order_update_failed":      "Error al actualizar el pedido",

		// 用户
		"error.user_id_invalid":       "Usuario inválido",
		"error.user_id_type_invalid":  "Usuario inválido",
		"error.profile_not_found":     "Usuario no encontrado",
		"error.profile_invalid":       "Datos del perfil inválidos",
		"error.profile_update_failed": "Error al actualizar el perfil",
		"error.token_invalid":         "Sesión expirada, inicia sesión de nuevo",

		// 钱包登录
		"error.wallet_payload_invalid": "Respuesta de la billetera inválida",
		"error.wallet_auth_rejected":   "Inicio de sesión con billetera rechazado",
		"error.wallet_nonce_invalid":   "Desafío de inicio expirado, inténtalo de nuevo",
		"error.wallet_nonce_mismatch":  "La firma no coincide con el desafío",
		"error.wallet_address_invalid": "Dirección de billetera inválida",
		"error.wallet_auth_failed":     "Error al iniciar sesión con billetera",

		// 后台
		"error.admin_id_invalid":        "Administrador inválido",
		"error.admin_id_type_invalid":   "Administrador inválido",
		"error.admin_not_found":         "Administrador no encontrado",
		"error.login_invalid":           "Usuario o contraseña incorrectos",
		"error.login_failed":            "Error al iniciar sesión",
		"error.captcha_required":        "Introduce el código de verificación",
		"error.captcha_invalid":         "Código de verificación incorrecto",
		"error.captcha_disabled":        "Código de verificación desactivado",
		"error.captcha_generate_failed": "Error al generar el código",
		"error.permission_denied":       "Permiso denegado",
		"error.authz_role_invalid":      "Rol inexistente",
		"error.authz_self_update":       "No puedes cambiar tus propios roles",
		"error.authz_unavailable":       "Control de acceso no disponible",
		"error.authz_failed":            "Error al actualizar permisos",
		"error.audit_log_fetch_failed":  "Error al cargar la auditoría",
	},
}
