package services

// Services defined in this package:
// - AuthService: user registration and login
// - StudentService: student records
// - GradeService: grades attached to students
