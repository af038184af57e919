package service

import (
	"commentboard/app/config"
	"commentboard/app/models"
	"commentboard/app/services"
)

type seedPost struct {
	post     models.Post
	comments []models.CommentData
}

var seedData = []seedPost{
	{
		post: models.Post{
			UserID: 1,
			Title:  "sunt aut facere repellat provident",
			Body:   "quia et suscipit suscipit recusandae consequuntur expedita et cum reprehenderit molestiae ut ut quas totam",
		},
		comments: []models.CommentData{
			{Name: "id labore ex et quam laborum", Email: "Eliseo@gardner.biz", Body: "laudantium enim quasi est quidem magnam voluptate ipsam eos"},
			{Name: "quo vero reiciendis velit similique", Email: "Jayne_Kuhic@sydney.com", Body: "est natus enim nihil est dolore omnis voluptatem numquam"},
		},
	},
	{
		post: models.Post{
			UserID: 1,
			Title:  "qui est esse",
			Body:   "est rerum tempore vitae sequi sint nihil reprehenderit dolor beatae ea dolores neque",
		},
		comments: []models.CommentData{
			{Name: "odio adipisci rerum aut animi", Email: "Nikita@garfield.biz", Body: "quia molestiae reprehenderit quasi aspernatur aut expedita occaecati"},
		},
	},
	{
		post: models.Post{
			UserID: 2,
			Title:  "ea molestias quasi exercitationem",
			Body:   "et iusto sed quo iure voluptatem occaecati omnis eligendi aut ad",
		},
	},
}

// seed inserts sample posts and comments through the services so the data
// passes the same validation as API input.
func seed(cfg config.StorageConfig) int {
	storage, err := openStorage(cfg)
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer storage.Close()

	postService := services.NewPostService(storage.Posts(), storage.Comments())
	commentService := services.NewCommentService(storage.Comments(), storage.Posts())

	var posts, comments int
	for _, item := range seedData {
		post := item.post
		if err := postService.CreatePost(&post); err != nil {
			printf("Failed to create post %q: %v\n", post.Title, err)
			return 1
		}
		posts++

		for _, data := range item.comments {
			if _, err := commentService.CreateComment(data.ForPost(post.ID)); err != nil {
				printf("Failed to create comment on post %d: %v\n", post.ID, err)
				return 1
			}
			comments++
		}
	}

	printf("Seeded %d posts and %d comments\n", posts, comments)
	return 0
}
