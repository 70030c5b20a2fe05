package router

import "github.com/gin-gonic/gin"

func (r *Router) interviewRoutes(version *gin.RouterGroup) {
	interview := version.Group("/interview")
	interview.Use(r.authMw.RequireAuth())
	{
		questions := interview.Group("/questions")
		{
			questions.GET("", r.interviewHandler.ListQuestions)
			questions.GET("/random", r.interviewHandler.RandomQuestions)
			questions.GET("/:id", r.interviewHandler.GetQuestion)
		}

		interview.GET("/categories", r.interviewHandler.ListCategories)

		responses := interview.Group("/responses")
		{
			responses.POST("/text", r.interviewHandler.SubmitText)
			responses.POST("/audio", r.interviewHandler.SubmitAudio)
			responses.GET("/history", r.interviewHandler.History)
			responses.GET("/:id", r.interviewHandler.GetResponse)
		}
	}
}
