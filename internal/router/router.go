package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/handler"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← POS client / Session store
func New(cfg *config.Config, sesiones session.Store, rdb *redis.Client, dispatcher *worker.Dispatcher, templatesGlob string) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	r.SetFuncMap(handler.TemplateFuncs())
	r.LoadHTMLGlob(templatesGlob)
	r.Static("/static", "web/static")

	// ── Infrastructure ───────────────────────────────────────────────────────
	breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	api := posapi.NewClient(cfg, sesiones, breaker)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(api, sesiones)
	productoSvc := service.NewProductoService(api)
	pedidoSvc := service.NewPedidoService(api, productoSvc)
	cierreSvc := service.NewCierreService(api, dispatcher, cfg.PDFStoragePath, cfg.ReporteEmail)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	panelH := handler.NewPanelHandler(productoSvc, pedidoSvc, cierreSvc)
	productosH := handler.NewProductosHandler(productoSvc, panelH)
	pedidosH := handler.NewPedidosHandler(pedidoSvc, productoSvc, panelH)
	cierreH := handler.NewCierreHandler(cierreSvc, panelH)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb, breaker))
	r.GET("/", handler.Inicio(sesiones))
	r.GET("/login", authH.LoginPage)
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/logout", authH.Logout)
	r.GET("/no-autorizado", handler.NoAutorizado)

	// Session-guarded pages
	guard := middleware.SessionGuard(sesiones)

	r.GET("/admin", guard, middleware.RequireRol(model.RolAdmin), panelH.Panel)
	r.GET("/mesero", guard, middleware.RequireRol(model.RolMesero), panelH.Panel)

	// Order workflow — both roles
	pedidos := r.Group("/pedidos", guard, middleware.RequireRol(model.RolAdmin, model.RolMesero))
	{
		pedidos.POST("/nuevo", pedidosH.NuevoCarrito)
		pedidos.POST("/:id/agregar", pedidosH.CarritoParaPedido)
		pedidos.GET("/carrito", pedidosH.Carrito)
		pedidos.POST("/carrito/agregar", pedidosH.AgregarItem)
		pedidos.POST("/carrito/quitar", pedidosH.QuitarItem)
		pedidos.POST("/carrito/cancelar", pedidosH.CancelarCarrito)
		pedidos.POST("/carrito/guardar", pedidosH.GuardarCarrito)
		pedidos.GET("/:id/cerrar", pedidosH.CerrarForm)
		pedidos.POST("/:id/cerrar", pedidosH.Cerrar)
		pedidos.GET("/:id/eliminar", pedidosH.EliminarForm)
		pedidos.POST("/:id/eliminar", pedidosH.Eliminar)
	}

	// Catalog management + day close — administrador only
	admin := r.Group("/", guard, middleware.RequireRol(model.RolAdmin))
	{
		admin.GET("/productos/:id/editar", productosH.Editar)
		admin.POST("/productos/:id", productosH.Actualizar)

		admin.GET("/cierre", cierreH.Vista)
		admin.POST("/cierre/confirmar", cierreH.Confirmar)
		admin.POST("/cierre/cancelar", cierreH.Cancelar)
		admin.POST("/cierre/ejecutar", cierreH.Ejecutar)
		admin.POST("/cierre/descartar", cierreH.Descartar)
		admin.GET("/cierre/pdf", cierreH.PDF)
		admin.GET("/cierres", cierreH.Historial)
	}

	return r
}
